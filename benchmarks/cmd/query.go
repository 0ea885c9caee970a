package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeu5/cardmdp/solver"
)

var policyPath string

func QueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query hand...",
		Short: "Print action codes from a policy written by solve --out",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if policyPath == "" {
				return errors.New("--policy is required")
			}
			table, err := solver.ReadPolicyFile(policyPath)
			if err != nil {
				return err
			}
			hands, err := parseHandArgs(args)
			if err != nil {
				return err
			}
			for _, h := range hands {
				a, v, ok := table.Lookup(h)
				if ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%g\n", a.Code(), a, v)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t-\n", a.Code(), a)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&policyPath, "policy", "", "Policy file written by solve --out")
	return cmd
}
