package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/zeu5/cardmdp/game"
)

const (
	DefaultTolerance = 1e-6
	DefaultMaxSweeps = 100
)

// SweepStats summarises one full value iteration sweep.
type SweepStats struct {
	Sweep         int
	MaxDelta      float64
	PolicyChanges int
}

type Option func(*Solver)

// WithTolerance sets the largest value change still counted as converged.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		s.tolerance = tol
	}
}

// WithMaxSweeps caps the number of sweeps.
func WithMaxSweeps(n int) Option {
	return func(s *Solver) {
		s.maxSweeps = n
	}
}

// WithSweepHook is called after every sweep.
func WithSweepHook(hook func(SweepStats)) Option {
	return func(s *Solver) {
		s.onSweep = hook
	}
}

// Solver computes the optimal policy of one game configuration by value iteration.
type Solver struct {
	config    game.Config
	tolerance float64
	maxSweeps int
	onSweep   func(SweepStats)
}

func New(config game.Config, opts ...Option) (*Solver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		config:    config,
		tolerance: DefaultTolerance,
		maxSweeps: DefaultMaxSweeps,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxSweeps < 1 {
		return nil, fmt.Errorf("max sweeps must be positive, got %d", s.maxSweeps)
	}
	return s, nil
}

// Solve enumerates the states, builds the transition model and runs
// synchronous value iteration until a sweep changes no value by more than
// the tolerance and no policy entry, or the sweep cap is hit.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	hands := game.EnumerateStates(s.config.Threshold)
	index := NewStateIndex(hands)
	glog.Infof("Enumerated %d hands below threshold %d", len(hands), s.config.Threshold)

	m, err := buildModel(s.config, index)
	if err != nil {
		return nil, fmt.Errorf("error building transition model: %w", err)
	}

	values := make([]float64, index.Len())
	policy := make([]game.Action, index.Len())
	for i := range policy {
		policy[i] = game.StopAction()
	}

	sol := &Solution{
		config: s.config,
		index:  index,
	}
	for sweep := 1; sweep <= s.maxSweeps; sweep++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("solve cancelled at sweep %d: %w", sweep, ctx.Err())
		default:
		}

		next := make([]float64, len(values))
		copy(next, values)
		stats := SweepStats{Sweep: sweep}
		for i := 0; i < index.NumHands(); i++ {
			bestVal, bestAction := backup(m, values, i)
			delta := math.Abs(next[i] - bestVal)
			if delta > stats.MaxDelta {
				stats.MaxDelta = delta
			}
			if delta > s.tolerance || policy[i] != bestAction {
				stats.PolicyChanges++
			}
			next[i] = bestVal
			policy[i] = bestAction
		}
		values = next
		sol.sweeps = sweep

		glog.V(1).Infof("Sweep %d: max delta %g, %d states changed", sweep, stats.MaxDelta, stats.PolicyChanges)
		if s.onSweep != nil {
			s.onSweep(stats)
		}
		if stats.PolicyChanges == 0 {
			sol.converged = true
			break
		}
	}
	if !sol.converged {
		glog.Warningf("Value iteration did not converge within %d sweeps", s.maxSweeps)
	}

	sol.values = values
	sol.policy = policy
	return sol, nil
}

// backup evaluates every action of hand state i against values and returns
// the best. Candidates are tried in action code order and only a strictly
// larger value replaces the incumbent, so earlier actions win ties.
func backup(m *model, values []float64, i int) (float64, game.Action) {
	bestVal := float64(-1)
	bestAction := game.StopAction()
	for _, ch := range m.choices[i] {
		if val := expected(values, ch); val > bestVal {
			bestVal = val
			bestAction = ch.action
		}
	}
	if m.payoff[i] > bestVal {
		bestVal = m.payoff[i]
		bestAction = game.StopAction()
	}
	return bestVal, bestAction
}
