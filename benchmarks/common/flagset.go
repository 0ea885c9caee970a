package common

import (
	"fmt"
	"path"
	"time"

	"github.com/zeu5/cardmdp/game"
	"github.com/zeu5/cardmdp/util"
)

type Flags struct {
	GameFlags
	SavePath string
	RunFlags
	Parallelism int
	Debug       bool
	Seed        uint64
	RunID       string
}

type GameFlags struct {
	Threshold int
	Bonus     int
	Sequence  []int
	// Testcase, when set, overrides the three flags above.
	Testcase string
}

type RunFlags struct {
	NumRuns                int
	Episodes               int
	Horizon                int
	MaxConsecutiveErrors   int
	MaxConsecutiveTimeouts int
	EpisodeTimeout         time.Duration
}

func DefaultFlags() *Flags {
	return &Flags{
		GameFlags: GameFlags{
			Threshold: 21,
			Bonus:     10,
			Sequence:  []int{},
		},
		SavePath: "results",
		RunFlags: RunFlags{
			NumRuns:                1,
			Episodes:               1000,
			Horizon:                30,
			MaxConsecutiveErrors:   20,
			MaxConsecutiveTimeouts: 20,
			EpisodeTimeout:         0,
		},
		Parallelism: 4,
		Debug:       false,
	}
}

// Game returns the game config and test hands. The test hands are only
// populated when a testcase file is given.
func (f *Flags) Game() (game.Config, []game.Hand, error) {
	if f.Testcase != "" {
		tc, err := game.ReadTestcase(f.Testcase)
		if err != nil {
			return game.Config{}, nil, err
		}
		return tc.Config, tc.Hands, nil
	}
	cfg := game.Config{
		Threshold: f.Threshold,
		Bonus:     f.Bonus,
		Sequence:  util.CopyIntSlice(f.Sequence),
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, nil, err
	}
	return cfg, nil, nil
}

func (f *Flags) Record() error {
	if err := util.SaveJson(path.Join(f.SavePath, "config.json"), f); err != nil {
		return fmt.Errorf("error recording flags: %w", err)
	}
	return nil
}
