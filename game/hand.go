package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Hand is a set of distinct cards stored as a bitset over the deck.
// Equal hands have equal values, so a Hand is its own canonical key.
type Hand uint32

// EmptyHand holds no cards.
const EmptyHand Hand = 0

// NewHand builds a hand from cards, rejecting duplicates and cards outside the deck.
func NewHand(cards ...Card) (Hand, error) {
	h := EmptyHand
	for _, c := range cards {
		if !c.Valid() {
			return EmptyHand, fmt.Errorf("card %v: not in deck", c)
		}
		if h.Has(c) {
			return EmptyHand, fmt.Errorf("card %v: duplicate", c)
		}
		h = h.With(c)
	}
	return h, nil
}

// ParseHand reads whitespace or '+' separated card tokens, e.g. "1H 2D".
func ParseHand(s string) (Hand, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '+' || r == ',' || r == '\t'
	})
	return ParseHandTokens(tokens)
}

func ParseHandTokens(tokens []string) (Hand, error) {
	cards := make([]Card, 0, len(tokens))
	for _, t := range tokens {
		c, err := ParseCard(t)
		if err != nil {
			return EmptyHand, err
		}
		cards = append(cards, c)
	}
	return NewHand(cards...)
}

func (h Hand) Has(c Card) bool {
	return h&(1<<c.bit()) != 0
}

func (h Hand) With(c Card) Hand {
	return h | 1<<c.bit()
}

func (h Hand) Without(c Card) Hand {
	return h &^ (1 << c.bit())
}

func (h Hand) Len() int {
	return bits.OnesCount32(uint32(h))
}

// Cards lists the held cards in canonical (sorted) order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Len())
	for rest := uint32(h); rest != 0; rest &= rest - 1 {
		out = append(out, cardFromBit(uint(bits.TrailingZeros32(rest))))
	}
	return out
}

// Faces lists the face values of the held cards in ascending order.
func (h Hand) Faces() []int {
	cards := h.Cards()
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Face
	}
	return out
}

func (h Hand) Sum() int {
	sum := 0
	for rest := uint32(h); rest != 0; rest &= rest - 1 {
		sum += int(bits.TrailingZeros32(rest)/2) + 1
	}
	return sum
}

// Remaining lists the deck cards not in the hand, in deck order.
func (h Hand) Remaining() []Card {
	out := make([]Card, 0, DeckSize-h.Len())
	for _, c := range deck {
		if !h.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ContainsRun reports whether seq appears as a contiguous window of the
// sorted face values. An empty seq is always contained.
func (h Hand) ContainsRun(seq []int) bool {
	faces := h.Faces()
	for i := 0; i+len(seq) <= len(faces); i++ {
		match := true
		for j, v := range seq {
			if faces[i+j] != v {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Compare orders hands like sorted card tuples: card by card, shorter prefix first.
func (h Hand) Compare(o Hand) int {
	a, b := h.Cards(), o.Cards()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func (h Hand) String() string {
	cards := h.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
