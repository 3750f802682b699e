// Package qm implements exact two-level Quine-McCluskey Boolean function
// minimization: prime-implicant generation over a ternary term alphabet,
// incidence-table reduction and an exhaustive Petrick-style branching
// cover search, rendered to Boolean expression strings by the Problem
// driver.
package qm

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Sentinel construction errors returned by NewProblem and its options.
var (
	ErrMixedTermKinds = errors.New("qm: minterms and maxterms are mutually exclusive")
	ErrNoTermKind     = errors.New("qm: exactly one of minterms or maxterms must be supplied")
	ErrInvalidWidth   = errors.New("qm: width must be a positive integer")
	ErrInvalidDash    = errors.New("qm: dash symbol must be a single byte distinct from '0' and '1'")
	ErrVarsTooShort   = errors.New("qm: vars must supply at least width names")
)

// Problem holds one minimization request: width, dash symbol, variable
// alphabet, preferences, the three input term sets, and (once computed)
// the implicant pool, prime map, covers and rendered expressions.
//
// A Problem is built once via NewProblem and is not safe for concurrent
// mutation.
type Problem struct {
	width     int
	dc        byte
	vars      []string
	minOnly   bool
	sortTerms bool
	kind      kindOf

	mintermsIn  []InputTerm
	maxtermsIn  []InputTerm
	dontcaresIn []InputTerm

	required  []term
	dontCares []term

	pool       implicantPool
	primeTable table
	primeList  []term

	covers   [][]term
	rendered []string
}

// Option configures a Problem at construction time.
type Option func(*config) error

type config struct {
	dc        byte
	vars      []string
	minOnly   bool
	sortTerms bool
	minterms  []InputTerm
	maxterms  []InputTerm
	dontcares []InputTerm
}

// WithMinterms declares the required-true assignments. Mutually exclusive
// with WithMaxterms.
func WithMinterms(terms ...InputTerm) Option {
	return func(c *config) error {
		c.minterms = append(c.minterms, terms...)
		return nil
	}
}

// WithMaxterms declares the required-false assignments. Mutually exclusive
// with WithMinterms.
func WithMaxterms(terms ...InputTerm) Option {
	return func(c *config) error {
		c.maxterms = append(c.maxterms, terms...)
		return nil
	}
}

// WithDontCares declares assignments whose value is unconstrained.
func WithDontCares(terms ...InputTerm) Option {
	return func(c *config) error {
		c.dontcares = append(c.dontcares, terms...)
		return nil
	}
}

// WithDash overrides the default '-' don't-care symbol used in implicant
// strings. It must be a single byte distinct from '0' and '1'.
func WithDash(dc byte) Option {
	return func(c *config) error {
		if dc == '0' || dc == '1' {
			return errors.WithStack(ErrInvalidDash)
		}
		c.dc = dc
		return nil
	}
}

// WithVars overrides the default A..Z (extending to AA, AB, ...) variable
// alphabet. len(vars) must be >= width.
func WithVars(vars []string) Option {
	return func(c *config) error {
		c.vars = vars
		return nil
	}
}

// WithMinOnly overrides the default (true) preference for keeping only
// minimum-cost covers in Solve's output.
func WithMinOnly(v bool) Option {
	return func(c *config) error {
		c.minOnly = v
		return nil
	}
}

// WithSortTerms overrides the default (true) preference for sorting each
// cover's implicants in descending order.
func WithSortTerms(v bool) Option {
	return func(c *config) error {
		c.sortTerms = v
		return nil
	}
}

// NewProblem validates and constructs a Problem for a width-variable
// Boolean function.
func NewProblem(width int, opts ...Option) (*Problem, error) {
	if width <= 0 {
		return nil, errors.WithStack(ErrInvalidWidth)
	}

	c := &config{dc: defaultDash, minOnly: true, sortTerms: true}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if len(c.minterms) > 0 && len(c.maxterms) > 0 {
		return nil, errors.WithStack(ErrMixedTermKinds)
	}
	if len(c.minterms) == 0 && len(c.maxterms) == 0 {
		return nil, errors.WithStack(ErrNoTermKind)
	}

	vars := c.vars
	if vars == nil {
		vars = defaultVars(width)
	}
	if len(vars) < width {
		return nil, errors.WithStack(ErrVarsTooShort)
	}

	kind := kindMinterm
	rawRequired := c.minterms
	if len(c.maxterms) > 0 {
		kind = kindMaxterm
		rawRequired = c.maxterms
	}

	required, err := resolveAll(rawRequired, width)
	if err != nil {
		return nil, errors.Wrap(err, "qm: invalid required term")
	}
	dontCares, err := resolveAll(c.dontcares, width)
	if err != nil {
		return nil, errors.Wrap(err, "qm: invalid don't-care term")
	}

	return &Problem{
		width:       width,
		dc:          c.dc,
		vars:        vars,
		minOnly:     c.minOnly,
		sortTerms:   c.sortTerms,
		kind:        kind,
		mintermsIn:  c.minterms,
		maxtermsIn:  c.maxterms,
		dontcaresIn: c.dontcares,
		required:    required,
		dontCares:   dontCares,
	}, nil
}

// Width reports the variable count this Problem was constructed with.
func (p *Problem) Width() int { return p.width }

// ensurePrimes runs prime-implicant generation once, caching the implicant
// pool and the top-level prime incidence table for the remainder of the
// Problem's life.
func (p *Problem) ensurePrimes() {
	if p.primeTable != nil {
		return
	}
	all := make([]term, 0, len(p.required)+len(p.dontCares))
	all = append(all, p.required...)
	all = append(all, p.dontCares...)

	pool, primes := generatePrimes(all, p.dc)
	p.pool = pool
	p.primeList = primes
	p.primeTable = table(buildPrimeMap(primes, p.required, p.dc))
}

// FindPrimes returns the prime implicants generated from the problem's
// input terms.
func (p *Problem) FindPrimes() []string {
	p.ensurePrimes()
	return termsToStrings(p.primeList)
}

// FindEssentials returns the essential prime implicants of the top-level
// incidence table. It does not mutate the Problem's canonical table.
func (p *Problem) FindEssentials() []string {
	p.ensurePrimes()
	ess := findEssentials(p.primeTable)
	return sortedStrings(ess.ToSlice())
}

// RowDominance returns the primes that survive one row-dominance pass over
// a copy of the top-level incidence table.
func (p *Problem) RowDominance() []string {
	p.ensurePrimes()
	cp := p.primeTable.clone()
	rowDominance(cp)
	return sortedStrings(cp.primes())
}

// ColumnDominance returns the primes remaining after one column-dominance
// pass over a copy of the top-level incidence table.
func (p *Problem) ColumnDominance() []string {
	p.ensurePrimes()
	cp := p.primeTable.clone()
	columnDominance(cp)
	return sortedStrings(cp.primes())
}

// ToBoolean renders an explicit cover (a list of implicant strings, as
// returned by FindPrimes or Solve's internal search) as a single Boolean
// expression string.
func (p *Problem) ToBoolean(cover []string) (string, error) {
	ts := make([]term, len(cover))
	for i, s := range cover {
		t, err := parseImplicantString(s, p.width, p.dc)
		if err != nil {
			return "", err
		}
		ts[i] = t
	}
	return renderCover(ts, p.kind, p.vars, p.dc), nil
}

// Solve runs the full pipeline (prime generation if needed, then the
// cover search, then rendering) and returns one Boolean expression string
// per minimal cover found.
func (p *Problem) Solve() []string {
	p.ensurePrimes()
	if p.rendered != nil {
		return p.rendered
	}
	prefs := preferences{minOnly: p.minOnly, sortTerms: p.sortTerms, dontCareCh: p.dc}
	p.covers = search(p.primeTable.clone(), prefs)
	p.rendered = renderCovers(p.covers, p.kind, p.vars, p.dc)
	return p.rendered
}

func termsToStrings(ts []term) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}

func sortedStrings(ts []term) []string {
	cp := append([]term(nil), ts...)
	slices.Sort(cp)
	return termsToStrings(cp)
}
