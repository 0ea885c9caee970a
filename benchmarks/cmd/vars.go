package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zeu5/cardmdp/benchmarks/common"
)

var (
	flags     *common.Flags = common.DefaultFlags()
	savePath  string
	threshold int
	bonus     int
	sequence  []int
	testcase  string
	envFile   string

	numRuns                int
	episodes               int
	horizon                int
	maxConsecutiveErrors   int
	maxConsecutiveTimeouts int
	episodeTimeout         int
	parallelism            int
	debug                  bool
	seed                   uint64
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional env file with CARDMDP_* overrides")
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().IntVar(&threshold, "threshold", flags.Threshold, "Bust threshold")
	cmd.PersistentFlags().IntVar(&bonus, "bonus", flags.Bonus, "Bonus for holding the sequence")
	cmd.PersistentFlags().IntSliceVar(&sequence, "sequence", flags.Sequence, "Bonus face sequence, e.g. 3,4,5")
	cmd.PersistentFlags().StringVar(&testcase, "testcase", "", "Testcase file; overrides threshold, bonus and sequence")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Horizon")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")
	cmd.PersistentFlags().IntVar(&maxConsecutiveTimeouts, "max-consecutive-timeouts", flags.MaxConsecutiveTimeouts, "Maximum number of consecutive timeouts")
	cmd.PersistentFlags().IntVar(&episodeTimeout, "episode-timeout", int(flags.EpisodeTimeout.Seconds()), "Episode timeout in seconds, 0 for none")
	cmd.PersistentFlags().IntVar(&parallelism, "parallelism", flags.Parallelism, "Number of parallel runs")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Write episode traces")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", flags.Seed, "Environment seed, 0 seeds from the clock")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Threshold = threshold
	flags.Bonus = bonus
	flags.Sequence = sequence
	flags.Testcase = testcase

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.MaxConsecutiveTimeouts = maxConsecutiveTimeouts
	flags.EpisodeTimeout = time.Duration(episodeTimeout) * time.Second
	flags.Parallelism = parallelism
	flags.Debug = debug
	flags.Seed = seed
}
