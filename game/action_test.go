package game

import "testing"

func TestActionCodes(t *testing.T) {
	tests := []struct {
		action Action
		code   int
		name   string
	}{
		{action: DrawAction(), code: 0, name: "draw"},
		{action: SwapAction(Card{Face: 1, Suit: Hearts}), code: 1, name: "swap 1H"},
		{action: SwapAction(Card{Face: 13, Suit: Hearts}), code: 13, name: "swap 13H"},
		{action: SwapAction(Card{Face: 1, Suit: Diamonds}), code: 14, name: "swap 1D"},
		{action: SwapAction(Card{Face: 13, Suit: Diamonds}), code: 26, name: "swap 13D"},
		{action: StopAction(), code: 27, name: "stop"},
	}
	for _, tt := range tests {
		if got := tt.action.Code(); got != tt.code {
			t.Errorf("%v.Code() = %d, want %d", tt.action, got, tt.code)
		}
		if got := tt.action.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		back, err := ActionFromCode(tt.code)
		if err != nil {
			t.Fatalf("ActionFromCode(%d): %v", tt.code, err)
		}
		if back != tt.action {
			t.Errorf("ActionFromCode(%d) = %v, want %v", tt.code, back, tt.action)
		}
	}
}

func TestActionFromCodeOutOfRange(t *testing.T) {
	for _, code := range []int{-1, 28, 100} {
		if _, err := ActionFromCode(code); err == nil {
			t.Errorf("ActionFromCode(%d) should fail", code)
		}
	}
}

func TestAllActionsOrder(t *testing.T) {
	actions := AllActions()
	if len(actions) != NumActions {
		t.Fatalf("got %d actions, want %d", len(actions), NumActions)
	}
	for i, a := range actions {
		if a.Code() != i {
			t.Errorf("action %d has code %d", i, a.Code())
		}
	}
	if actions[0].Kind != Draw || actions[NumActions-1].Kind != Stop {
		t.Error("draw must come first and stop last")
	}
}
