package solver

import "github.com/zeu5/cardmdp/game"

// StateIndex maps states to dense indices. Hands take 0..n-1 in the order
// given, BUST is n and STOP is n+1.
type StateIndex struct {
	hands []game.Hand
	index map[game.Hand]int
}

func NewStateIndex(hands []game.Hand) *StateIndex {
	s := &StateIndex{
		hands: make([]game.Hand, len(hands)),
		index: make(map[game.Hand]int, len(hands)),
	}
	copy(s.hands, hands)
	for i, h := range s.hands {
		s.index[h] = i
	}
	return s
}

// Len counts all states, terminals included.
func (s *StateIndex) Len() int {
	return len(s.hands) + 2
}

func (s *StateIndex) NumHands() int {
	return len(s.hands)
}

func (s *StateIndex) Bust() int {
	return len(s.hands)
}

func (s *StateIndex) Stop() int {
	return len(s.hands) + 1
}

func (s *StateIndex) IsTerminal(i int) bool {
	return i >= len(s.hands)
}

func (s *StateIndex) Lookup(h game.Hand) (int, bool) {
	i, ok := s.index[h]
	return i, ok
}

// Hand returns the hand at index i; false for terminals and out of range indices.
func (s *StateIndex) Hand(i int) (game.Hand, bool) {
	if i < 0 || i >= len(s.hands) {
		return game.EmptyHand, false
	}
	return s.hands[i], true
}

// Name renders the state at index i for logs and exports.
func (s *StateIndex) Name(i int) string {
	switch i {
	case s.Bust():
		return "BUST"
	case s.Stop():
		return "STOP"
	}
	h, _ := s.Hand(i)
	return h.String()
}
