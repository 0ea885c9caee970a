package game

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxFace is the highest face value in the deck. Faces run 1..MaxFace.
const MaxFace = 13

// DeckSize is the number of distinct cards (MaxFace faces in two suits).
const DeckSize = 2 * MaxFace

type Suit string

const (
	Diamonds Suit = "D"
	Hearts   Suit = "H"
)

func (s Suit) valid() bool {
	return s == Diamonds || s == Hearts
}

// ordinal orders suits the way the canonical hand sort does (D before H).
func (s Suit) ordinal() int {
	if s == Hearts {
		return 1
	}
	return 0
}

type Card struct {
	Face int
	Suit Suit
}

func (c Card) String() string {
	return strconv.Itoa(c.Face) + string(c.Suit)
}

func (c Card) Valid() bool {
	return c.Face >= 1 && c.Face <= MaxFace && c.Suit.valid()
}

// bit is the position of the card in a Hand bitset. Ascending bit order is
// the canonical card order: face first, then suit.
func (c Card) bit() uint {
	return uint((c.Face-1)*2 + c.Suit.ordinal())
}

func cardFromBit(b uint) Card {
	c := Card{Face: int(b/2) + 1, Suit: Diamonds}
	if b%2 == 1 {
		c.Suit = Hearts
	}
	return c
}

// Compare orders cards by face value, then suit.
func (c Card) Compare(o Card) int {
	if c.Face != o.Face {
		return c.Face - o.Face
	}
	return c.Suit.ordinal() - o.Suit.ordinal()
}

// ParseCard reads a token like "10H" or "3D".
func ParseCard(token string) (Card, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return Card{}, fmt.Errorf("card %q: too short", token)
	}
	face, err := strconv.Atoi(token[:len(token)-1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: bad face value: %w", token, err)
	}
	c := Card{Face: face, Suit: Suit(strings.ToUpper(token[len(token)-1:]))}
	if !c.Valid() {
		return Card{}, fmt.Errorf("card %q: not in deck", token)
	}
	return c, nil
}

var deck = newDeck()

// newDeck lists the cards face by face, hearts before diamonds.
// This order fixes the swap action codes and the order draws are averaged in.
func newDeck() []Card {
	out := make([]Card, 0, DeckSize)
	for face := 1; face <= MaxFace; face++ {
		out = append(out, Card{Face: face, Suit: Hearts}, Card{Face: face, Suit: Diamonds})
	}
	return out
}

// Deck returns a copy of the full card universe.
func Deck() []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}
