package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envSavePath    = "CARDMDP_SAVE_PATH"
	envParallelism = "CARDMDP_PARALLELISM"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cardmdp",
		Short:        "Solve and exercise the card accumulation game",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(cmd); err != nil {
				return err
			}
			UpdateFlags()
			return nil
		},
	}
	AddFlags(cmd)
	// glog registers its flags on the standard flag set
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	flag.CommandLine.Parse([]string{})

	cmd.AddCommand(
		SolveCommand(),
		QueryCommand(),
		SimulateCommand(),
		ServeCommand(),
	)

	return cmd
}

// loadEnv reads the env file, if any, and applies the CARDMDP_* variables
// to flags not set on the command line.
func loadEnv(cmd *cobra.Command) error {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if cmd.Flags().Changed("env-file") {
			glog.Warningf("env file %s not found", envFile)
		}
	}

	set := cmd.Flags()
	if err := envOverride(set, envSavePath, "save-path", func(v string) error {
		savePath = v
		return nil
	}); err != nil {
		return err
	}
	return envOverride(set, envParallelism, "parallelism", func(v string) error {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envParallelism, err)
		}
		parallelism = p
		return nil
	})
}

// envOverride applies the env variable key unless the flag was given explicitly.
func envOverride(set *pflag.FlagSet, key, flagName string, apply func(string) error) error {
	v, ok := os.LookupEnv(key)
	if !ok || set.Changed(flagName) {
		return nil
	}
	return apply(v)
}
