package game

import (
	"fmt"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/cardmdp/core"
)

type Outcome int

const (
	Playing Outcome = iota
	Busted
	Stopped
)

// HandState is the environment state: the hand held, or a terminal marker.
type HandState struct {
	Hand    Hand
	Outcome Outcome
	// Bonus records whether a stopped hand earned the sequence bonus.
	Bonus bool
}

var _ core.State = &HandState{}

func (s *HandState) Hash() string {
	switch s.Outcome {
	case Busted:
		return "BUST"
	case Stopped:
		return "STOP"
	}
	return "[" + s.Hand.String() + "]"
}

func (s *HandState) Terminal() bool {
	return s.Outcome != Playing
}

// Actions lists the moves available from this state in code order.
// Draws and swaps need at least one card left outside the hand.
func (s *HandState) Actions() []core.Action {
	if s.Terminal() {
		return []core.Action{}
	}
	out := make([]core.Action, 0, s.Hand.Len()+2)
	if s.Hand.Len() < DeckSize {
		out = append(out, DrawAction())
		for _, c := range s.Hand.Cards() {
			if c.Suit == Hearts {
				out = append(out, SwapAction(c))
			}
		}
		for _, c := range s.Hand.Cards() {
			if c.Suit == Diamonds {
				out = append(out, SwapAction(c))
			}
		}
	}
	return append(out, StopAction())
}

func (s *HandState) String() string {
	return s.Hash()
}

// Environment plays single games from the empty hand with a seeded card source.
type Environment struct {
	config Config
	rand   *erand.Rand
	hand   Hand
}

var _ core.Environment = &Environment{}

func NewEnvironment(config Config, seed uint64) *Environment {
	return &Environment{
		config: config,
		rand:   erand.New(erand.NewSource(seed)),
	}
}

func (e *Environment) Reset() (core.State, error) {
	e.hand = EmptyHand
	return &HandState{Hand: e.hand}, nil
}

func (e *Environment) Step(a core.Action, _ *core.StepContext) (core.State, float64, error) {
	action, ok := a.(Action)
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown action type %T", core.ErrInvalidAction, a)
	}
	switch action.Kind {
	case Stop:
		bonus := e.config.HasBonus(e.hand)
		return &HandState{Hand: e.hand, Outcome: Stopped, Bonus: bonus}, float64(e.config.Payoff(e.hand)), nil
	case Swap:
		if !e.hand.Has(action.Card) {
			return nil, 0, fmt.Errorf("%w: %s from [%s]", core.ErrInvalidAction, action, e.hand)
		}
	}

	remaining := e.hand.Remaining()
	if len(remaining) == 0 {
		return nil, 0, fmt.Errorf("%w: %s with no cards left", core.ErrInvalidAction, action)
	}
	next := e.hand
	if action.Kind == Swap {
		next = next.Without(action.Card)
	}
	next = next.With(remaining[e.rand.Intn(len(remaining))])
	e.hand = next
	if e.config.Busts(next) {
		return &HandState{Hand: next, Outcome: Busted}, 0, nil
	}
	return &HandState{Hand: next}, 0, nil
}

// EnvironmentConstructor hands each worker its own environment.
// A zero Seed seeds from the clock.
type EnvironmentConstructor struct {
	Config Config
	Seed   uint64
}

var _ core.EnvironmentConstructor = &EnvironmentConstructor{}

func (c *EnvironmentConstructor) NewEnvironment(instance int) core.Environment {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewEnvironment(c.Config, seed+uint64(instance))
}
