package policies

import (
	"math"
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/cardmdp/core"
)

// SoftMaxPolicy is Q-learning that explores by sampling actions from a
// Boltzmann distribution over their values.
type SoftMaxPolicy struct {
	QTable      map[string]map[string]float64
	Alpha       float64
	Gamma       float64
	Temperature float64

	rand erand.Source
}

// NewSoftMaxPolicy instantiates the SoftMaxPolicy
func NewSoftMaxPolicy(alpha, gamma, temperature float64) *SoftMaxPolicy {
	return &SoftMaxPolicy{
		QTable:      make(map[string]map[string]float64),
		Alpha:       alpha,
		Gamma:       gamma,
		Temperature: temperature,
		rand:        erand.NewSource(uint64(time.Now().UnixNano())),
	}
}

// Checking interface compatibility
var _ core.Policy = &SoftMaxPolicy{}

func (s *SoftMaxPolicy) Reset() {
	s.QTable = make(map[string]map[string]float64)
	s.rand = erand.NewSource(uint64(time.Now().UnixNano()))
}

func (s *SoftMaxPolicy) ResetEpisode(_ *core.EpisodeContext) {
}

func (s *SoftMaxPolicy) UpdateEpisode(_ *core.EpisodeContext) {
}

func (s *SoftMaxPolicy) PickAction(_ *core.StepContext, state core.State, actions []core.Action) core.Action {
	if len(actions) == 0 {
		return nil
	}
	stateHash := state.Hash()

	if _, ok := s.QTable[stateHash]; !ok {
		s.QTable[stateHash] = make(map[string]float64)
	}

	vals := make([]float64, len(actions))
	largestValue := math.Inf(-1)
	for i, action := range actions {
		val := s.QTable[stateHash][action.Hash()]
		vals[i] = val
		if val > largestValue {
			largestValue = val
		}
	}

	temperature := s.Temperature
	if temperature <= 0 {
		temperature = 1
	}
	// Shifting by the largest value keeps exp from overflowing
	sum := float64(0)
	for i := range vals {
		vals[i] = math.Exp((vals[i] - largestValue) / temperature)
		sum += vals[i]
	}
	weights := make([]float64, len(vals))
	for i, v := range vals {
		weights[i] = v / sum
	}
	// using the sampleuv library to sample based on the weights
	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return nil
	}
	return actions[i]
}

func (s *SoftMaxPolicy) UpdateStep(_ *core.StepContext, state core.State, action core.Action, reward float64, nextState core.State) {
	stateHash := state.Hash()
	actionKey := action.Hash()
	if _, ok := s.QTable[stateHash]; !ok {
		s.QTable[stateHash] = make(map[string]float64)
	}
	curVal := s.QTable[stateHash][actionKey]

	max := float64(0)
	if !nextState.Terminal() {
		for _, val := range s.QTable[nextState.Hash()] {
			if val > max {
				max = val
			}
		}
	}
	s.QTable[stateHash][actionKey] = (1-s.Alpha)*curVal + s.Alpha*(reward+s.Gamma*max)
}

type SoftMaxPolicyConstructor struct {
	alpha float64
	gamma float64
	temp  float64
}

var _ core.PolicyConstructor = &SoftMaxPolicyConstructor{}

func NewSoftMaxPolicyConstructor(alpha, gamma, temp float64) *SoftMaxPolicyConstructor {
	return &SoftMaxPolicyConstructor{
		alpha: alpha,
		gamma: gamma,
		temp:  temp,
	}
}

func (s *SoftMaxPolicyConstructor) NewPolicy() core.Policy {
	return NewSoftMaxPolicy(s.alpha, s.gamma, s.temp)
}
