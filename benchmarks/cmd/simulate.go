package cmd

import (
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/zeu5/cardmdp/benchmarks/cardgame"
)

func SimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play the solved policy against learning policies and compare returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, _, err := flags.Game()
			if err != nil {
				return err
			}
			flags.RunID = uuid.New().String()
			flags.SavePath = path.Join(flags.SavePath, flags.RunID)
			if err := flags.Record(); err != nil {
				return err
			}

			sol, err := solveWithProgress(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), sol)

			cmp := cardgame.PrepareComparison(flags, cfg, sol)
			cmp.Out = cmd.ErrOrStderr()
			results := cmp.Run(ctx, flags.NumRuns, cardgame.RunConfig(flags), flags.Parallelism)

			out := cmd.OutOrStdout()
			for run, result := range results {
				fmt.Fprintf(out, "Run %d\n", run)
				for _, e := range cmp.Experiments {
					r, ok := result[e.Name]
					if !ok {
						continue
					}
					if r.IsError() {
						fmt.Fprintf(out, "  %-8s %s\n", e.Name, aurora.Red(r.Error.Error()))
						continue
					}
					fmt.Fprintf(out, "  %-8s mean return %s over %d episodes\n",
						e.Name, aurora.Cyan(fmt.Sprintf("%.3f", r.MeanReturn())), r.CompletedEpisodes)
				}
			}
			fmt.Fprintf(out, "Results saved to %s\n", flags.SavePath)
			return nil
		},
	}
	return cmd
}
