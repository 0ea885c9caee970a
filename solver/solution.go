package solver

import "github.com/zeu5/cardmdp/game"

// Solution is the frozen output of Solve. It is safe for concurrent reads.
type Solution struct {
	config    game.Config
	index     *StateIndex
	values    []float64
	policy    []game.Action
	sweeps    int
	converged bool
}

func (s *Solution) Config() game.Config {
	return s.config
}

func (s *Solution) Index() *StateIndex {
	return s.index
}

// Sweeps is the number of value iteration sweeps run.
func (s *Solution) Sweeps() int {
	return s.sweeps
}

// Converged is false when the sweep cap was hit first. The tables are still usable.
func (s *Solution) Converged() bool {
	return s.converged
}

// Values returns a copy of the value table, indexed like Index.
func (s *Solution) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Policy returns a copy of the policy table, indexed like Index.
func (s *Solution) Policy() []game.Action {
	out := make([]game.Action, len(s.policy))
	copy(out, s.policy)
	return out
}

// Lookup returns the chosen action and value for h. Hands outside the
// solved state space report Stop and false.
func (s *Solution) Lookup(h game.Hand) (game.Action, float64, bool) {
	i, ok := s.index.Lookup(h)
	if !ok {
		return game.StopAction(), 0, false
	}
	return s.policy[i], s.values[i], true
}

func (s *Solution) Action(h game.Hand) game.Action {
	a, _, _ := s.Lookup(h)
	return a
}

func (s *Solution) Value(h game.Hand) (float64, bool) {
	_, v, ok := s.Lookup(h)
	return v, ok
}
