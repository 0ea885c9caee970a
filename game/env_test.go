package game

import (
	"errors"
	"testing"

	"github.com/zeu5/cardmdp/core"
)

func actionHashes(actions []core.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Hash()
	}
	return out
}

func TestHandStateActions(t *testing.T) {
	empty := &HandState{Hand: EmptyHand}
	if got := actionHashes(empty.Actions()); len(got) != 2 || got[0] != "0" || got[1] != "27" {
		t.Errorf("empty hand actions = %v, want [0 27]", got)
	}

	h, _ := ParseHand("2D 1H")
	got := actionHashes((&HandState{Hand: h}).Actions())
	want := []string{"0", "1", "15", "27"}
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("actions = %v, want %v", got, want)
			break
		}
	}

	for _, s := range []*HandState{{Outcome: Busted}, {Outcome: Stopped}} {
		if !s.Terminal() || len(s.Actions()) != 0 {
			t.Errorf("%s should be terminal with no actions", s)
		}
	}
}

func TestEnvironmentDrawAndStop(t *testing.T) {
	cfg := Config{Threshold: 200, Bonus: 5, Sequence: []int{}}
	env := NewEnvironment(cfg, 42)
	state, err := env.Reset()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		state, _, err = env.Step(DrawAction(), nil)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		hs := state.(*HandState)
		if hs.Terminal() || hs.Hand.Len() != i {
			t.Fatalf("after draw %d: %s", i, hs)
		}
	}
	held := state.(*HandState).Hand
	state, reward, err := env.Step(StopAction(), nil)
	if err != nil {
		t.Fatal(err)
	}
	hs := state.(*HandState)
	if hs.Outcome != Stopped || !hs.Bonus {
		t.Errorf("stop state = %+v", hs)
	}
	if reward != float64(held.Sum()+5) {
		t.Errorf("reward = %v, want %d", reward, held.Sum()+5)
	}
}

func TestEnvironmentSwap(t *testing.T) {
	env := NewEnvironment(Config{Threshold: 200}, 7)
	env.Reset()
	state, _, _ := env.Step(DrawAction(), nil)
	card := state.(*HandState).Hand.Cards()[0]

	state, _, err := env.Step(SwapAction(card), nil)
	if err != nil {
		t.Fatal(err)
	}
	hs := state.(*HandState)
	if hs.Hand.Has(card) || hs.Hand.Len() != 1 {
		t.Errorf("swap of %s gave [%s]", card, hs.Hand)
	}

	missing := Card{Face: 13, Suit: Hearts}
	if hs.Hand.Has(missing) {
		missing = Card{Face: 13, Suit: Diamonds}
	}
	if _, _, err := env.Step(SwapAction(missing), nil); !errors.Is(err, core.ErrInvalidAction) {
		t.Errorf("swap of unheld card: err = %v", err)
	}
}

func TestEnvironmentBust(t *testing.T) {
	// every card busts a threshold of 1
	env := NewEnvironment(Config{Threshold: 1}, 1)
	env.Reset()
	state, reward, err := env.Step(DrawAction(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if hs := state.(*HandState); hs.Outcome != Busted || reward != 0 {
		t.Errorf("got %s with reward %v, want BUST with 0", hs, reward)
	}
}

func TestEnvironmentSeeded(t *testing.T) {
	play := func() []Hand {
		env := NewEnvironment(Config{Threshold: 200}, 99)
		env.Reset()
		out := []Hand{}
		for i := 0; i < 5; i++ {
			s, _, _ := env.Step(DrawAction(), nil)
			out = append(out, s.(*HandState).Hand)
		}
		return out
	}
	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at draw %d: [%s] vs [%s]", i, a[i], b[i])
		}
	}
}
