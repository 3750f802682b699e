package qm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func asTerms(ss ...string) []term {
	out := make([]term, len(ss))
	for i, s := range ss {
		out[i] = term(s)
	}
	return out
}

func TestGeneratePrimes_SimpleMerge(t *testing.T) {
	// A.B'.C' # A.B'.C -> A.B' (100, 101 differ only in bit 2 -> 10-)
	_, primes := generatePrimes(asTerms("100", "101"), '-')
	got := make([]string, len(primes))
	for i, p := range primes {
		got[i] = string(p)
	}
	assert.Equal(t, []string{"10-"}, got)
}

func TestGeneratePrimes_Scenario4x1(t *testing.T) {
	// W=4, minterms {4,8,10,11,12,15}, dontcares {9,14}
	terms := []term{"0100", "1000", "1010", "1011", "1100", "1111", "1001", "1110"}
	_, primes := generatePrimes(terms, '-')
	primeMap := buildPrimeMap(primes, asTerms("0100", "1000", "1010", "1011", "1100", "1111"), '-')

	// Every required term must be covered by at least one returned prime.
	required := asTerms("0100", "1000", "1010", "1011", "1100", "1111")
	for _, r := range required {
		covered := false
		for p, covers := range primeMap {
			for _, c := range covers {
				if c == r {
					covered = true
				}
			}
			_ = p
		}
		assert.True(t, covered, "term %s not covered by any prime", r)
	}
}

func TestGeneratePrimes_NoMergePossible(t *testing.T) {
	// Two minterms at Hamming distance 2 never merge; both remain prime.
	_, primes := generatePrimes(asTerms("000", "011"), '-')
	got := make([]string, len(primes))
	for i, p := range primes {
		got[i] = string(p)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"000", "011"}, got)
}

func TestBuildPrimeMap_ExcludesDontCares(t *testing.T) {
	primes := asTerms("1--")
	required := asTerms("100", "101")
	dontcare := term("110")
	pm := buildPrimeMap(primes, required, '-')
	for _, c := range pm["1--"] {
		assert.NotEqual(t, dontcare, c)
	}
	assert.ElementsMatch(t, []term{"100", "101"}, pm["1--"])
}
