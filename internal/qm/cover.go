package qm

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// preferences mirrors the problem-level options the search stage consults:
// whether to keep only minimum-cost covers and whether to sort each
// emitted cover's implicants in descending order.
type preferences struct {
	minOnly    bool
	sortTerms  bool
	dontCareCh byte
}

// search runs the cover search end to end: the essentials/dominance fixed
// point, the Petrick-style branching search, cost pruning and
// deduplication. t itself is not modified: the search runs on a clone, and
// every branch clones again.
func search(t table, prefs preferences) [][]term {
	raw := recurse(t.clone(), nil)
	return finalize(raw, prefs)
}

// recurse implements one frame of the branching solver. prefix holds the
// primes already committed to by this frame's ancestors; it is copied,
// never shared, across branches.
func recurse(t table, prefix []term) [][]term {
	frame := append([]term(nil), prefix...)

	for {
		changed := false

		if ess := findEssentials(t); ess.Cardinality() > 0 {
			purgeEssentials(t, ess)
			t.dropEmptyRows()
			sorted := ess.ToSlice()
			slices.Sort(sorted)
			frame = append(frame, sorted...)
			changed = true
		}
		if rowDominance(t) {
			changed = true
		}
		if columnDominance(t) {
			changed = true
		}
		if !changed {
			break
		}
	}

	if len(t) == 0 {
		return [][]term{append([]term(nil), frame...)}
	}

	bestTerm, candidates := selectBranchTerm(t)
	if len(candidates) == 0 {
		panic("qm: residual table has primes but no term left to cover")
	}

	var results [][]term
	for _, p := range candidates {
		reduced := t.clone()
		reduced.removeTerm(bestTerm)
		for _, c := range t[p] {
			reduced.removeTerm(c)
		}
		reduced.removePrime(p)
		reduced.dropEmptyRows()

		childPrefix := append(append([]term(nil), frame...), p)
		results = append(results, recurse(reduced, childPrefix)...)
	}
	return results
}

// selectBranchTerm picks the required term covered by the fewest remaining
// primes (ties broken lexicographically on the term itself) and returns it
// along with its sorted set of covering primes.
func selectBranchTerm(t table) (term, []term) {
	cols := t.columns()
	keys := make([]term, 0, len(cols))
	for c := range cols {
		keys = append(keys, c)
	}
	slices.Sort(keys)

	var best term
	bestCount := -1
	for _, c := range keys {
		n := len(cols[c])
		if bestCount == -1 || n < bestCount {
			bestCount = n
			best = c
		}
	}
	candidates := append([]term(nil), cols[best]...)
	slices.Sort(candidates)
	return best, candidates
}

// finalize applies cost pruning and deduplication across the full set of
// covers gathered from the recursion tree, then orders each cover's
// implicants per the sortTerms preference.
func finalize(raw [][]term, prefs preferences) [][]term {
	if prefs.minOnly && len(raw) > 0 {
		minCost := coverCost(raw[0], prefs.dontCareCh)
		for _, c := range raw[1:] {
			if cc := coverCost(c, prefs.dontCareCh); cc < minCost {
				minCost = cc
			}
		}
		kept := raw[:0]
		for _, c := range raw {
			if coverCost(c, prefs.dontCareCh) == minCost {
				kept = append(kept, c)
			}
		}
		raw = kept
	}

	seen := mapset.NewSet[string]()
	var unique [][]term
	for _, c := range raw {
		key := canonicalKey(c)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		unique = append(unique, c)
	}

	for i, c := range unique {
		cp := append([]term(nil), c...)
		if prefs.sortTerms {
			slices.SortFunc(cp, func(a, b term) int { return strings.Compare(string(b), string(a)) })
		}
		unique[i] = cp
	}

	slices.SortFunc(unique, func(a, b []term) int { return strings.Compare(joinTerms(a, ","), joinTerms(b, ",")) })
	return unique
}

func coverCost(c []term, dc byte) int {
	n := 0
	for _, p := range c {
		n += literalCount(p, dc)
	}
	return n
}

// canonicalKey compares covers as multisets of prime strings:
// order-independent, duplicate-count-independent within a single cover is
// not expected (each prime appears at most once per cover by construction),
// so a sorted join is a sufficient identity key.
func canonicalKey(c []term) string {
	cp := append([]term(nil), c...)
	slices.Sort(cp)
	return joinTerms(cp, ",")
}
