package qm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario describes one end-to-end minimization problem with a known
// minimum cost. Since equally-costed alternative covers are both valid,
// these checks verify cost and coverage rather than an exact rendered
// string.
type scenario struct {
	name      string
	width     int
	minterms  []uint64
	dontcares []uint64
	wantCost  int
}

func TestGoldenScenarios(t *testing.T) {
	scenarios := []scenario{
		{
			name:      "scenario1",
			width:     4,
			minterms:  []uint64{4, 8, 10, 11, 12, 15},
			dontcares: []uint64{9, 14},
			wantCost:  7,
		},
		{
			name:      "scenario2",
			width:     5,
			minterms:  []uint64{0, 5, 7, 8, 10, 11, 15, 17, 18, 23, 26, 27},
			dontcares: []uint64{2, 16, 19, 21, 24, 25},
			wantCost:  11,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			p, err := NewProblem(sc.width,
				WithMinterms(intVals(sc.minterms...)...),
				WithDontCares(intVals(sc.dontcares...)...),
			)
			require.NoError(t, err)

			rendered := p.Solve()
			require.NotEmpty(t, rendered)

			require.NotNil(t, p.covers)
			firstCost := coverCost(p.covers[0], p.dc)
			assert.Equal(t, sc.wantCost, firstCost, "cover cost should match the reference minimum")

			required := make([]term, 0, len(sc.minterms))
			for _, m := range sc.minterms {
				bits, err := toBits(m, sc.width)
				require.NoError(t, err)
				required = append(required, bits)
			}

			for _, cover := range p.covers {
				assert.Equal(t, firstCost, coverCost(cover, p.dc), "all returned covers must share the minimum cost")
				assertCoversAll(t, cover, required, p.dc)
				assertIrredundant(t, cover, required, p.dc)
			}
			assertNoDuplicateCovers(t, p.covers)
		})
	}
}

// assertCoversAll checks that every required term is mask-matched by at
// least one implicant in the cover.
func assertCoversAll(t *testing.T, cover []term, required []term, dc byte) {
	t.Helper()
	for _, r := range required {
		covered := false
		for _, p := range cover {
			if maskMatch(p, r, dc) {
				covered = true
				break
			}
		}
		assert.True(t, covered, "term %s not covered by cover %v", r, cover)
	}
}

// assertIrredundant checks that removing any implicant from the cover
// leaves some required term uncovered.
func assertIrredundant(t *testing.T, cover []term, required []term, dc byte) {
	t.Helper()
	if len(cover) < 2 {
		return
	}
	for i := range cover {
		without := make([]term, 0, len(cover)-1)
		without = append(without, cover[:i]...)
		without = append(without, cover[i+1:]...)

		allStillCovered := true
		for _, r := range required {
			covered := false
			for _, p := range without {
				if maskMatch(p, r, dc) {
					covered = true
					break
				}
			}
			if !covered {
				allStillCovered = false
				break
			}
		}
		assert.False(t, allStillCovered, "cover %v is redundant: %s can be dropped", cover, cover[i])
	}
}

// assertNoDuplicateCovers checks that the solver never returns the same
// cover (as a multiset of implicants) twice.
func assertNoDuplicateCovers(t *testing.T, covers [][]term) {
	t.Helper()
	seen := map[string]bool{}
	for _, c := range covers {
		key := canonicalKey(c)
		assert.False(t, seen[key], "duplicate cover returned: %v", c)
		seen[key] = true
	}
}

func TestSolve_Determinism(t *testing.T) {
	newProblem := func() *Problem {
		p, err := NewProblem(4, WithMinterms(intVals(4, 8, 10, 11, 12, 15)...), WithDontCares(intVals(9, 14)...))
		require.NoError(t, err)
		return p
	}
	a := newProblem().Solve()
	b := newProblem().Solve()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("solve is not deterministic (-a +b):\n%s", diff)
	}
}

func TestNewProblem_MixingTermsFails(t *testing.T) {
	_, err := NewProblem(3, WithMinterms(Int(1)), WithMaxterms(Int(2)))
	assert.Error(t, err)
}
