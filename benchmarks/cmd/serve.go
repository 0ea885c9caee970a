package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeu5/cardmdp/server"
)

var addr string

func ServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Solve once and answer policy queries over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			cfg, _, err := flags.Game()
			if err != nil {
				return err
			}
			sol, err := solveWithProgress(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), sol)

			return server.New(sol).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Address to listen on")
	addSolverFlags(cmd)
	return cmd
}
