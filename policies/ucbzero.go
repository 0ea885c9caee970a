package policies

import (
	"math"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/cardmdp/core"
)

type UCBZeroParams struct {
	StateSize   int
	ActionsSize int
	Horizon     int
	Episodes    int
	// MaxReward bounds a single episode's return. Unseen actions start here.
	MaxReward float64
	Constant  float64
	Epsilon   float64
}

// UCBZeroPolicy is optimistic Q-learning with a Hoeffding style exploration bonus.
type UCBZeroPolicy struct {
	qTable *QTable
	visits *QTable
	rand   *erand.Rand
	params UCBZeroParams

	eta float64
}

func NewUCBZeroPolicy(params UCBZeroParams) *UCBZeroPolicy {
	eta := math.Log(
		float64(params.Horizon) * float64(params.ActionsSize) * float64(params.Episodes) * float64(params.StateSize),
	)

	return &UCBZeroPolicy{
		qTable: NewQTable(),
		visits: NewQTable(),
		rand:   erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
		params: params,

		eta: eta,
	}
}

var _ core.Policy = &UCBZeroPolicy{}

func (b *UCBZeroPolicy) ResetEpisode(_ *core.EpisodeContext) {
}

func (b *UCBZeroPolicy) UpdateEpisode(_ *core.EpisodeContext) {
}

func (b *UCBZeroPolicy) PickAction(_ *core.StepContext, state core.State, actions []core.Action) core.Action {
	if len(actions) == 0 {
		return nil
	}
	if b.rand.Float64() < b.params.Epsilon {
		return actions[b.rand.Intn(len(actions))]
	}
	return pickMax(b.qTable, state, actions, b.params.MaxReward)
}

func (b *UCBZeroPolicy) UpdateStep(_ *core.StepContext, state core.State, action core.Action, reward float64, nextState core.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	t := b.visits.Get(stateHash, actionHash, 0) + 1
	b.visits.Set(stateHash, actionHash, t)

	nextStateVal := float64(0)
	if !nextState.Terminal() {
		_, nextStateVal = b.qTable.Max(nextState.Hash(), b.params.MaxReward)
		if nextStateVal > b.params.MaxReward {
			nextStateVal = b.params.MaxReward
		}
	}

	horizon := float64(b.params.Horizon)
	bonus := b.params.Constant * b.params.MaxReward * math.Sqrt((math.Pow(horizon, 3)+b.eta)/t) / horizon
	alphaT := (horizon + 1) / (horizon + t)
	curVal := b.qTable.Get(stateHash, actionHash, b.params.MaxReward)

	newVal := (1-alphaT)*curVal + alphaT*(reward+nextStateVal+bonus)
	b.qTable.Set(stateHash, actionHash, newVal)
}

func (b *UCBZeroPolicy) Reset() {
	b.qTable = NewQTable()
	b.visits = NewQTable()
	b.rand = erand.New(erand.NewSource(uint64(time.Now().UnixNano())))
}

type UCBZeroPolicyConstructor struct {
	params UCBZeroParams
}

var _ core.PolicyConstructor = &UCBZeroPolicyConstructor{}

func NewUCBZeroPolicyConstructor(params UCBZeroParams) *UCBZeroPolicyConstructor {
	return &UCBZeroPolicyConstructor{
		params: params,
	}
}

func (b *UCBZeroPolicyConstructor) NewPolicy() core.Policy {
	return NewUCBZeroPolicy(b.params)
}
