package policies

import (
	"github.com/zeu5/cardmdp/core"
	"github.com/zeu5/cardmdp/game"
)

// Planner answers which action to take for a hand. Both solver.Solution and
// solver.PolicyTable satisfy it.
type Planner interface {
	Action(game.Hand) game.Action
}

// SolvedPolicy plays a precomputed plan and never learns.
type SolvedPolicy struct {
	planner Planner
}

var _ core.Policy = &SolvedPolicy{}

func NewSolvedPolicy(planner Planner) *SolvedPolicy {
	return &SolvedPolicy{planner: planner}
}

func (s *SolvedPolicy) Reset() {}

func (s *SolvedPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (s *SolvedPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

// PickAction plays the planned action when it is available and stops otherwise.
func (s *SolvedPolicy) PickAction(_ *core.StepContext, state core.State, actions []core.Action) core.Action {
	hs, ok := state.(*game.HandState)
	if !ok || len(actions) == 0 {
		return nil
	}
	want := s.planner.Action(hs.Hand).Hash()
	var stop core.Action
	for _, a := range actions {
		if a.Hash() == want {
			return a
		}
		if a.Hash() == game.StopAction().Hash() {
			stop = a
		}
	}
	return stop
}

func (s *SolvedPolicy) UpdateStep(_ *core.StepContext, _ core.State, _ core.Action, _ float64, _ core.State) {
}

type SolvedPolicyConstructor struct {
	planner Planner
}

var _ core.PolicyConstructor = &SolvedPolicyConstructor{}

func NewSolvedPolicyConstructor(planner Planner) *SolvedPolicyConstructor {
	return &SolvedPolicyConstructor{planner: planner}
}

// NewPolicy shares the planner; plans are read only.
func (s *SolvedPolicyConstructor) NewPolicy() core.Policy {
	return NewSolvedPolicy(s.planner)
}
