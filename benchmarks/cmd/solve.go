package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/golang/glog"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/zeu5/cardmdp/game"
	"github.com/zeu5/cardmdp/solver"
	"github.com/zeu5/cardmdp/util"
)

var (
	outPath   string
	tolerance float64
	maxSweeps int
)

func SolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [hand...]",
		Short: "Solve the game and print an action code per test hand",
		Long: "Solve the game and print one action code per test hand on stdout.\n" +
			"Hands come from the testcase file followed by any arguments, e.g. \"1H 2D\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, hands, err := flags.Game()
			if err != nil {
				return err
			}
			extra, err := parseHandArgs(args)
			if err != nil {
				return err
			}
			hands = append(hands, extra...)

			sol, err := solveWithProgress(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), sol)

			if outPath != "" {
				if err := sol.RecordFile(outPath); err != nil {
					return err
				}
				glog.Infof("Wrote policy to %s", outPath)
			}

			for _, h := range hands {
				fmt.Fprintln(cmd.OutOrStdout(), sol.Action(h).Code())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Write the solved policy as JSON lines")
	addSolverFlags(cmd)
	return cmd
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tolerance, "tolerance", solver.DefaultTolerance, "Value iteration tolerance")
	cmd.Flags().IntVar(&maxSweeps, "max-sweeps", solver.DefaultMaxSweeps, "Maximum value iteration sweeps")
}

func solveWithProgress(ctx context.Context, cfg game.Config, out io.Writer) (*solver.Solution, error) {
	printer := util.NewTerminalPrinter(out, 100*time.Millisecond)
	status := printer.NewOutput()
	status.Set("Enumerating states")

	s, err := solver.New(cfg,
		solver.WithTolerance(tolerance),
		solver.WithMaxSweeps(maxSweeps),
		solver.WithSweepHook(func(st solver.SweepStats) {
			status.TrySet(fmt.Sprintf("Sweep %d/%d, max delta %.3g, %d changes",
				st.Sweep, maxSweeps, st.MaxDelta, st.PolicyChanges))
		}),
	)
	if err != nil {
		return nil, err
	}

	printer.Start(ctx)
	sol, err := s.Solve(ctx)
	printer.Stop()
	return sol, err
}

func printSummary(w io.Writer, sol *solver.Solution) {
	cfg := sol.Config()
	fmt.Fprintf(w, "threshold %d, bonus %d, sequence %v\n", cfg.Threshold, cfg.Bonus, cfg.Sequence)
	fmt.Fprintf(w, "%d states, %d sweeps, ", sol.Index().NumHands(), sol.Sweeps())
	if sol.Converged() {
		fmt.Fprintln(w, aurora.Green("converged"))
	} else {
		fmt.Fprintln(w, aurora.Yellow("did not converge"))
	}
	if v, ok := sol.Value(game.EmptyHand); ok {
		fmt.Fprintf(w, "value of the empty hand: %s\n", aurora.Bold(fmt.Sprintf("%.4f", v)))
	}
}

func parseHandArgs(args []string) ([]game.Hand, error) {
	hands := make([]game.Hand, 0, len(args))
	for _, arg := range args {
		h, err := game.ParseHand(arg)
		if err != nil {
			return nil, fmt.Errorf("hand %q: %w", arg, err)
		}
		hands = append(hands, h)
	}
	return hands, nil
}

// signalContext is cancelled on interrupt or when the returned cancel is called.
func signalContext() (context.Context, context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	doneCh := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}
