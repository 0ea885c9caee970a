package policies

import (
	"math/rand"
	"time"

	"github.com/zeu5/cardmdp/core"
)

// GreedyQPolicy is epsilon-greedy tabular Q-learning on the episode reward.
type GreedyQPolicy struct {
	qTable   *QTable
	alpha    float64
	discount float64
	epsilon  float64
	rand     *rand.Rand
}

var _ core.Policy = &GreedyQPolicy{}

func NewGreedyQPolicy(alpha, discount, epsilon float64) *GreedyQPolicy {
	return &GreedyQPolicy{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *GreedyQPolicy) Record(path string) error {
	return g.qTable.Record(path)
}

func (g *GreedyQPolicy) Reset() {
	g.qTable = NewQTable()
}

func (g *GreedyQPolicy) ResetEpisode(_ *core.EpisodeContext) {
}

func (g *GreedyQPolicy) UpdateEpisode(_ *core.EpisodeContext) {
}

func (g *GreedyQPolicy) PickAction(_ *core.StepContext, state core.State, actions []core.Action) core.Action {
	if len(actions) == 0 {
		return nil
	}
	if g.rand.Float64() < g.epsilon {
		return actions[g.rand.Intn(len(actions))]
	}
	return pickMax(g.qTable, state, actions, 0)
}

func (g *GreedyQPolicy) UpdateStep(_ *core.StepContext, state core.State, action core.Action, reward float64, nextState core.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()

	nextStateVal := float64(0)
	if !nextState.Terminal() {
		_, nextStateVal = g.qTable.Max(nextState.Hash(), 0)
	}
	curVal := g.qTable.Get(stateHash, actionHash, 0)

	newVal := (1-g.alpha)*curVal + g.alpha*(reward+g.discount*nextStateVal)
	g.qTable.Set(stateHash, actionHash, newVal)
}

// pickMax returns the action with the highest table value, unseen actions counting as def.
func pickMax(q *QTable, state core.State, actions []core.Action, def float64) core.Action {
	actionsMap := make(map[string]core.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := q.MaxAmong(state.Hash(), availableActions, def)
	if maxAction == "" {
		return nil
	}
	return actionsMap[maxAction]
}

type GreedyQPolicyConstructor struct {
	alpha    float64
	discount float64
	epsilon  float64
}

var _ core.PolicyConstructor = &GreedyQPolicyConstructor{}

func NewGreedyQPolicyConstructor(alpha, discount, epsilon float64) *GreedyQPolicyConstructor {
	return &GreedyQPolicyConstructor{
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
	}
}

func (g *GreedyQPolicyConstructor) NewPolicy() core.Policy {
	return NewGreedyQPolicy(g.alpha, g.discount, g.epsilon)
}
