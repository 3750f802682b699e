package qm

import "github.com/pkg/errors"

// InputTerm is a single input assignment supplied to NewProblem, accepted
// either as an integer (interpreted as a W-bit binary number, MSB first)
// or as an explicit W-wide ternary string with no dash. Build one with Int
// or Bits.
type InputTerm struct {
	n        uint64
	s        string
	isString bool
}

// Int builds an InputTerm from an integer assignment.
func Int(n uint64) InputTerm { return InputTerm{n: n} }

// Bits builds an InputTerm from an explicit binary string assignment. The
// string must be exactly width characters of '0'/'1' once resolved against
// a Problem's width; that check happens at construction time, not here.
func Bits(s string) InputTerm { return InputTerm{s: s, isString: true} }

// resolve converts the InputTerm against the problem's width, validating
// range (for integers) or length/alphabet (for strings).
func (it InputTerm) resolve(width int) (term, error) {
	if it.isString {
		t, err := parseTermString(it.s, width)
		if err != nil {
			return "", errors.WithStack(err)
		}
		return t, nil
	}
	t, err := toBits(it.n, width)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return t, nil
}

func resolveAll(items []InputTerm, width int) ([]term, error) {
	out := make([]term, 0, len(items))
	for _, it := range items {
		t, err := it.resolve(width)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
