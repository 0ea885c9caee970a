package cardgame

import (
	"path"

	"github.com/zeu5/cardmdp/analysis"
	"github.com/zeu5/cardmdp/benchmarks/common"
	"github.com/zeu5/cardmdp/core"
	"github.com/zeu5/cardmdp/game"
	"github.com/zeu5/cardmdp/policies"
)

// PrepareComparison pits the solved plan against the learning policies on
// the same game.
func PrepareComparison(flags *common.Flags, cfg game.Config, planner policies.Planner) *core.ParallelComparison {
	cmp := core.NewParallelComparison()

	envConstructor := &game.EnvironmentConstructor{
		Config: cfg,
		Seed:   flags.Seed,
	}

	cmp.AddAnalysis("Returns", analysis.NewReturnAnalyzerConstructor(), analysis.NewJSONComparatorConstructor(flags.SavePath, "returns.json"))
	cmp.AddAnalysis("Coverage", analysis.NewCoverageAnalyzerConstructor(), analysis.NewJSONComparatorConstructor(flags.SavePath, "coverage.json"))
	cmp.AddAnalysis("Errors", analysis.NewErrorAnalyzerConstructor(flags.SavePath), analysis.NewNoOpComparatorConstructor())
	if flags.Debug {
		cmp.AddAnalysis("Debug", analysis.NewPrintDebugAnalyzerConstructor(path.Join(flags.SavePath, "debug"), flags.Episodes-10), analysis.NewNoOpComparatorConstructor())
	}

	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "Solved",
		Environment: envConstructor,
		Policy:      policies.NewSolvedPolicyConstructor(planner),
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "Random",
		Environment: envConstructor,
		Policy:      &policies.RandomPolicyConstructor{},
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "GreedyQ",
		Environment: envConstructor,
		Policy:      policies.NewGreedyQPolicyConstructor(0.2, 0.95, 0.05),
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "SoftMax",
		Environment: envConstructor,
		Policy:      policies.NewSoftMaxPolicyConstructor(0.3, 0.9, 1),
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        "UCBZero",
		Environment: envConstructor,
		Policy: policies.NewUCBZeroPolicyConstructor(policies.UCBZeroParams{
			StateSize:   len(game.EnumerateStates(cfg.Threshold)) + 2,
			ActionsSize: game.NumActions,
			Horizon:     flags.Horizon,
			Episodes:    flags.Episodes,
			MaxReward:   float64(cfg.Threshold + cfg.Bonus),
			Constant:    0.1,
			Epsilon:     0.05,
		}),
	})
	return cmp
}

// RunConfig maps the run flags onto the runner's config.
func RunConfig(flags *common.Flags) *core.RunConfig {
	return &core.RunConfig{
		Episodes:                     flags.Episodes,
		Horizon:                      flags.Horizon,
		ThresholdConsecutiveErrors:   flags.MaxConsecutiveErrors,
		ThresholdConsecutiveTimeouts: flags.MaxConsecutiveTimeouts,
		EpisodeTimeout:               flags.EpisodeTimeout,
	}
}
