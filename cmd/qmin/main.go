// Command qmin minimizes a Boolean function over a list of minterms or
// maxterms, exposing the qm package's solver as a cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	qmin "github.com/gopld/qmin"
	"github.com/gopld/qmin/internal/qm"
)

var log = logrus.New()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qmin",
		Short:         "Exact Quine-McCluskey Boolean function minimizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the qmin version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), qmin.Version())
			return nil
		},
	}
}

type solveFlags struct {
	width      int
	minterms   []string
	maxterms   []string
	dontcares  []string
	dc         string
	vars       []string
	noMinOnly  bool
	noSortTerm bool
}

func newSolveCmd() *cobra.Command {
	flags := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Minimize a Boolean function given its minterms or maxterms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd, flags)
		},
	}

	registerSolveFlags(cmd.Flags(), flags)

	return cmd
}

func registerSolveFlags(fs *pflag.FlagSet, flags *solveFlags) {
	fs.IntVar(&flags.width, "width", 0, "number of variables (required)")
	fs.StringSliceVar(&flags.minterms, "minterms", nil, "comma-separated minterms (integers or ternary strings)")
	fs.StringSliceVar(&flags.maxterms, "maxterms", nil, "comma-separated maxterms (integers or ternary strings)")
	fs.StringSliceVar(&flags.dontcares, "dontcares", nil, "comma-separated don't-care terms")
	fs.StringVar(&flags.dc, "dc", "", "override the don't-care display symbol (single byte)")
	fs.StringSliceVar(&flags.vars, "vars", nil, "comma-separated variable names, overriding A..Z")
	fs.BoolVar(&flags.noMinOnly, "no-minonly", false, "keep non-minimum-cost covers in the output")
	fs.BoolVar(&flags.noSortTerm, "no-sortterms", false, "disable descending implicant sorting within each cover")
}

func runSolve(ctx context.Context, cmd *cobra.Command, flags *solveFlags) error {
	if flags.width <= 0 {
		log.WithField("width", flags.width).Error("invalid width")
		return fmt.Errorf("qmin: --width must be a positive integer")
	}

	opts := []qm.Option{qm.WithMinOnly(!flags.noMinOnly), qm.WithSortTerms(!flags.noSortTerm)}

	minterms, err := parseTerms(flags.minterms)
	if err != nil {
		return err
	}
	maxterms, err := parseTerms(flags.maxterms)
	if err != nil {
		return err
	}
	dontcares, err := parseTerms(flags.dontcares)
	if err != nil {
		return err
	}
	if len(minterms) > 0 {
		opts = append(opts, qm.WithMinterms(minterms...))
	}
	if len(maxterms) > 0 {
		opts = append(opts, qm.WithMaxterms(maxterms...))
	}
	if len(dontcares) > 0 {
		opts = append(opts, qm.WithDontCares(dontcares...))
	}
	if flags.dc != "" {
		if len(flags.dc) != 1 {
			log.WithField("dc", flags.dc).Error("invalid dash symbol")
			return fmt.Errorf("qmin: --dc must be a single byte")
		}
		opts = append(opts, qm.WithDash(flags.dc[0]))
	}
	if len(flags.vars) > 0 {
		opts = append(opts, qm.WithVars(flags.vars))
	}

	log.WithFields(logrus.Fields{
		"width":     flags.width,
		"minterms":  len(minterms),
		"maxterms":  len(maxterms),
		"dontcares": len(dontcares),
	}).Info("starting solve")

	p, err := qm.NewProblem(flags.width, opts...)
	if err != nil {
		log.WithError(err).Error("construction failed")
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for _, expr := range p.Solve() {
		fmt.Fprintln(cmd.OutOrStdout(), expr)
	}
	return nil
}

// parseTerms converts a flag's string elements into InputTerms. Each
// element is parsed as an unsigned integer when possible, falling back to
// a ternary string literal otherwise.
func parseTerms(parts []string) ([]qm.InputTerm, error) {
	out := make([]qm.InputTerm, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.ParseUint(part, 10, 64); err == nil {
			out = append(out, qm.Int(n))
			continue
		}
		out = append(out, qm.Bits(part))
	}
	return out, nil
}
