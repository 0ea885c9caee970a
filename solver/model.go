package solver

import (
	"fmt"

	"github.com/zeu5/cardmdp/game"
)

// choice is a stochastic action: the successor is drawn uniformly from next.
// An empty next means the action has nothing to draw and is worth 0.
type choice struct {
	action game.Action
	next   []int32
}

// model is the explicit MDP over an index. Every hand state has the draw
// choice first, then one swap per held card in action code order. Stop is
// not stored as a choice; its value is payoff.
type model struct {
	index   *StateIndex
	choices [][]choice
	payoff  []float64
}

func buildModel(cfg game.Config, index *StateIndex) (*model, error) {
	m := &model{
		index:   index,
		choices: make([][]choice, index.NumHands()),
		payoff:  make([]float64, index.NumHands()),
	}
	swaps := game.AllActions()[game.DrawCode+1 : game.StopCode]

	for i := 0; i < index.NumHands(); i++ {
		hand, _ := index.Hand(i)
		m.payoff[i] = float64(cfg.Payoff(hand))

		draw, err := m.outcomes(cfg, hand, hand)
		if err != nil {
			return nil, err
		}
		choices := []choice{{action: game.DrawAction(), next: draw}}
		for _, swap := range swaps {
			if !hand.Has(swap.Card) {
				continue
			}
			next, err := m.outcomes(cfg, hand, hand.Without(swap.Card))
			if err != nil {
				return nil, err
			}
			choices = append(choices, choice{action: swap, next: next})
		}
		m.choices[i] = choices
	}
	return m, nil
}

// outcomes lists the successor of base plus each card not in held, in deck
// order. Hands at or over the threshold go to BUST.
func (m *model) outcomes(cfg game.Config, held, base game.Hand) ([]int32, error) {
	remaining := held.Remaining()
	out := make([]int32, len(remaining))
	for i, c := range remaining {
		next := base.With(c)
		if cfg.Busts(next) {
			out[i] = int32(m.index.Bust())
			continue
		}
		j, ok := m.index.Lookup(next)
		if !ok {
			return nil, fmt.Errorf("successor [%s] of [%s] was not enumerated", next, held)
		}
		out[i] = int32(j)
	}
	return out, nil
}

func expected(values []float64, ch choice) float64 {
	if len(ch.next) == 0 {
		return 0
	}
	prob := 1.0 / float64(len(ch.next))
	val := float64(0)
	for _, n := range ch.next {
		val += prob * values[n]
	}
	return val
}
