package game

import (
	"testing"

	"golang.org/x/exp/slices"
)

func mustHand(t *testing.T, s string) Hand {
	t.Helper()
	h, err := ParseHand(s)
	if err != nil {
		t.Fatalf("ParseHand(%q): %v", s, err)
	}
	return h
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		token   string
		want    Card
		wantErr bool
	}{
		{token: "1H", want: Card{Face: 1, Suit: Hearts}},
		{token: "10D", want: Card{Face: 10, Suit: Diamonds}},
		{token: "13h", want: Card{Face: 13, Suit: Hearts}},
		{token: "0H", wantErr: true},
		{token: "14D", wantErr: true},
		{token: "5S", wantErr: true},
		{token: "H", wantErr: true},
		{token: "xH", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.token)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCard(%q) = %v, want error", tt.token, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCard(%q): %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestDeck(t *testing.T) {
	d := Deck()
	if len(d) != DeckSize {
		t.Fatalf("deck has %d cards, want %d", len(d), DeckSize)
	}
	seen := make(map[Card]bool)
	for _, c := range d {
		if !c.Valid() {
			t.Errorf("invalid card %v in deck", c)
		}
		if seen[c] {
			t.Errorf("duplicate card %v in deck", c)
		}
		seen[c] = true
	}
	if d[0] != (Card{Face: 1, Suit: Hearts}) || d[1] != (Card{Face: 1, Suit: Diamonds}) {
		t.Errorf("deck starts %v %v, want 1H 1D", d[0], d[1])
	}
}

func TestHandCanonicalOrder(t *testing.T) {
	h := mustHand(t, "3H 1H 1D")
	if got := h.String(); got != "1D 1H 3H" {
		t.Errorf("String() = %q, want %q", got, "1D 1H 3H")
	}
	if got := h.Sum(); got != 5 {
		t.Errorf("Sum() = %d, want 5", got)
	}
	if got := h.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if !slices.Equal(h.Faces(), []int{1, 1, 3}) {
		t.Errorf("Faces() = %v", h.Faces())
	}
	if other := mustHand(t, "1D+3H+1H"); other != h {
		t.Errorf("same cards in another order gave a different hand")
	}
}

func TestHandDuplicate(t *testing.T) {
	if _, err := ParseHand("2H 2H"); err == nil {
		t.Error("expected duplicate card error")
	}
}

func TestHandWithWithout(t *testing.T) {
	c := Card{Face: 7, Suit: Diamonds}
	h := EmptyHand.With(c)
	if !h.Has(c) {
		t.Fatal("With did not add card")
	}
	if h.Has(Card{Face: 7, Suit: Hearts}) {
		t.Fatal("With added the wrong suit")
	}
	if h.Without(c) != EmptyHand {
		t.Fatal("Without did not remove card")
	}
	if got := len(h.Remaining()); got != DeckSize-1 {
		t.Errorf("Remaining() has %d cards, want %d", got, DeckSize-1)
	}
	for _, r := range h.Remaining() {
		if r == c {
			t.Error("Remaining() contains a held card")
		}
	}
}

func TestContainsRun(t *testing.T) {
	tests := []struct {
		hand string
		seq  []int
		want bool
	}{
		{hand: "3H 4D 5H", seq: []int{4, 5}, want: true},
		{hand: "3H 4D 5H", seq: []int{4, 6}, want: false},
		{hand: "3H 4D 5H", seq: []int{3, 5}, want: false},
		{hand: "3H 4D 5H", seq: []int{3, 4, 5, 6}, want: false},
		{hand: "4D 4H 5H", seq: []int{4, 5}, want: true},
		{hand: "3H 4D 5H", seq: []int{}, want: true},
		{hand: "", seq: []int{}, want: true},
		{hand: "", seq: []int{1}, want: false},
	}
	for _, tt := range tests {
		h := mustHand(t, tt.hand)
		if got := h.ContainsRun(tt.seq); got != tt.want {
			t.Errorf("[%s].ContainsRun(%v) = %v, want %v", tt.hand, tt.seq, got, tt.want)
		}
	}
}

func TestHandCompare(t *testing.T) {
	ordered := []string{"", "1D", "1D 1H", "1D 2D", "1H", "1H 2H", "2D"}
	for i := 1; i < len(ordered); i++ {
		a, b := mustHand(t, ordered[i-1]), mustHand(t, ordered[i])
		if a.Compare(b) >= 0 {
			t.Errorf("[%s] should sort before [%s]", a, b)
		}
		if b.Compare(a) <= 0 {
			t.Errorf("[%s] should sort after [%s]", b, a)
		}
	}
}
