package qm

import (
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// implicantPool tracks every term string seen during generation and whether
// it was absorbed into a larger implicant. A term that stays unused is
// prime. Set semantics are required: each unique string appears once, so
// the pool is a plain map keyed on the term itself.
type implicantPool map[term]bool

// generatePrimes runs the Quine-McCluskey combination phase over the union
// of minterms, maxterms and don't-cares, bucketed by count of ones and
// merged level by level until no bin produces a new implicant.
//
// It returns the implicant pool (for callers that want the used/unused
// history) and the list of prime implicants: the pool entries that were
// never absorbed.
func generatePrimes(terms []term, dc byte) (implicantPool, []term) {
	pl := make(implicantPool)
	bins := map[int]mapset.Set[term]{}

	for _, t := range terms {
		if _, ok := pl[t]; ok {
			continue
		}
		pl[t] = false
		k := countOnes(t)
		if bins[k] == nil {
			bins[k] = mapset.NewSet[term]()
		}
		bins[k].Add(t)
	}

	for len(bins) > 0 {
		next := map[int]mapset.Set[term]{}
		keys := maps.Keys(bins)
		slices.Sort(keys)

		progressed := false
		for _, k := range keys {
			hi, ok := bins[k+1]
			if !ok {
				continue
			}
			lo := bins[k]
			for a := range lo.Iter() {
				for b := range hi.Iter() {
					if hamming(a, b) != 1 {
						continue
					}
					c := a.replaceAt(diffPos(a, b), dc)
					pl[a] = true
					pl[b] = true
					if _, seen := pl[c]; !seen {
						pl[c] = false
					}
					if next[k] == nil {
						next[k] = mapset.NewSet[term]()
					}
					next[k].Add(c)
					progressed = true
				}
			}
		}
		if !progressed {
			break
		}
		bins = next
	}

	var primes []term
	for t, used := range pl {
		if !used {
			primes = append(primes, t)
		}
	}
	slices.Sort(primes)
	return pl, primes
}

// buildPrimeMap builds the incidence table input: for each prime implicant, the
// subset of required terms (minterms ∪ maxterms, never don't-cares) that
// it mask-matches.
func buildPrimeMap(primes []term, required []term, dc byte) map[term][]term {
	out := make(map[term][]term, len(primes))
	for _, p := range primes {
		out[p] = maskMatches(p, required, dc)
	}
	return out
}
