package game

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

func TestPayoff(t *testing.T) {
	h, _ := ParseHand("3H 4D 5H")
	withBonus := Config{Threshold: 20, Bonus: 10, Sequence: []int{4, 5}}
	if got := withBonus.Payoff(h); got != 22 {
		t.Errorf("Payoff with [4 5] = %d, want 22", got)
	}
	noBonus := Config{Threshold: 20, Bonus: 10, Sequence: []int{4, 6}}
	if got := noBonus.Payoff(h); got != 12 {
		t.Errorf("Payoff with [4 6] = %d, want 12", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "ok", config: Config{Threshold: 10, Bonus: 3, Sequence: []int{1, 2}}},
		{name: "empty sequence", config: Config{Threshold: 10}},
		{name: "zero threshold", config: Config{Threshold: 0}, wantErr: true},
		{name: "face too high", config: Config{Threshold: 10, Sequence: []int{14}}, wantErr: true},
		{name: "face too low", config: Config{Threshold: 10, Sequence: []int{0}}, wantErr: true},
	}
	for _, tt := range tests {
		err := tt.config.Validate()
		if tt.wantErr != (err != nil) {
			t.Errorf("%s: Validate() = %v", tt.name, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: error %v does not wrap ErrInvalidConfig", tt.name, err)
		}
	}
}

const sampleTestcase = `Configuration:
5
10
1 2

Testcase:
1H 2D
2H 3D
4H
`

func TestParseTestcase(t *testing.T) {
	tc, err := ParseTestcase(strings.NewReader(sampleTestcase))
	if err != nil {
		t.Fatalf("ParseTestcase: %v", err)
	}
	if tc.Config.Threshold != 5 || tc.Config.Bonus != 10 {
		t.Errorf("config = %+v", tc.Config)
	}
	if !slices.Equal(tc.Config.Sequence, []int{1, 2}) {
		t.Errorf("sequence = %v", tc.Config.Sequence)
	}
	want := []string{"1H 2D", "2H 3D", "4H"}
	if len(tc.Hands) != len(want) {
		t.Fatalf("got %d hands, want %d", len(tc.Hands), len(want))
	}
	for i, w := range want {
		h, _ := ParseHand(w)
		if tc.Hands[i] != h {
			t.Errorf("hand %d = [%s], want [%s]", i, tc.Hands[i], h)
		}
	}
}

func TestParseTestcaseErrors(t *testing.T) {
	tests := map[string]string{
		"missing lines":  "Configuration:\n5\n10\n",
		"bad threshold":  "Configuration:\nfive\n10\n1 2\nTestcase:\n",
		"bad bonus":      "Configuration:\n5\nten\n1 2\nTestcase:\n",
		"bad sequence":   "Configuration:\n5\n10\n1 x\nTestcase:\n",
		"sequence range": "Configuration:\n5\n10\n1 20\nTestcase:\n",
		"bad card":       "Configuration:\n5\n10\n1 2\nTestcase:\n1H 2S\n",
		"duplicate card": "Configuration:\n5\n10\n1 2\nTestcase:\n1H 1H\n",
	}
	for name, input := range tests {
		_, err := ParseTestcase(strings.NewReader(input))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: error %v does not wrap ErrInvalidConfig", name, err)
		}
	}
}
