package qm

import (
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// findEssentials returns the set of primes that are, in the current table,
// the sole cover of at least one required term. Essentials are collapsed
// into a set: a prime essential for several terms still appears once.
func findEssentials(t table) mapset.Set[term] {
	cols := t.columns()
	essentials := mapset.NewSet[term]()
	for _, coverers := range cols {
		if len(coverers) == 1 {
			essentials.Add(coverers[0])
		}
	}
	return essentials
}

// purgeEssentials removes the essential rows from the table and, from every
// remaining row, every term those essentials cover.
func purgeEssentials(t table, essentials mapset.Set[term]) {
	covered := mapset.NewSet[term]()
	for e := range essentials.Iter() {
		for _, c := range t[e] {
			covered.Add(c)
		}
	}
	for p, covers := range t {
		if essentials.Contains(p) {
			delete(t, p)
			continue
		}
		kept := covers[:0]
		for _, c := range covers {
			if !covered.Contains(c) {
				kept = append(kept, c)
			}
		}
		t[p] = kept
	}
}

// rowDominance removes any prime P1 whose covered-term set is a proper
// subset of some other prime P2's. Ties (equal coverage) are kept,
// preserving alternative minimum covers for the branching stage to
// discover.
func rowDominance(t table) bool {
	primes := t.primes()
	slices.Sort(primes)
	changed := false
	for _, p1 := range primes {
		if _, ok := t[p1]; !ok {
			continue // already removed by an earlier dominance check this pass
		}
		s1 := mapset.NewSet(t[p1]...)
		for _, p2 := range primes {
			if p1 == p2 {
				continue
			}
			s2, ok := t[p2]
			if !ok {
				continue
			}
			if s1.IsProperSubset(mapset.NewSet(s2...)) {
				delete(t, p1)
				changed = true
				break
			}
		}
	}
	return changed
}

// columnDominance removes a required term T2 from the table when some
// other term T1's covering-prime set is a non-empty proper subset of T2's:
// any cover of T1 automatically covers T2, so T2 adds no constraint.
func columnDominance(t table) bool {
	cols := t.columns()
	terms := maps.Keys(cols)
	slices.Sort(terms)
	changed := false
	for _, t1 := range terms {
		s1 := mapset.NewSet(cols[t1]...)
		if s1.Cardinality() == 0 {
			continue
		}
		for _, t2 := range terms {
			if t1 == t2 {
				continue
			}
			s2, ok := cols[t2]
			if !ok {
				continue
			}
			if s1.IsProperSubset(mapset.NewSet(s2...)) {
				t.removeTerm(t2)
				delete(cols, t2)
				changed = true
			}
		}
	}
	if changed {
		t.dropEmptyRows()
	}
	return changed
}
