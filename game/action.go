package game

import (
	"fmt"
	"strconv"
)

type ActionKind int

const (
	Draw ActionKind = iota
	Swap
	Stop
)

// Action codes as reported to callers. Swap codes sit between DrawCode and
// StopCode: 1..13 swap out a heart, 14..26 a diamond.
const (
	DrawCode   = 0
	StopCode   = 27
	NumActions = StopCode + 1
)

// Action is one move in the game. Card is only meaningful for Swap.
type Action struct {
	Kind ActionKind
	Card Card
}

func DrawAction() Action {
	return Action{Kind: Draw}
}

func SwapAction(c Card) Action {
	return Action{Kind: Swap, Card: c}
}

func StopAction() Action {
	return Action{Kind: Stop}
}

// Code maps the action to its integer code. Codes give the tie-break order.
func (a Action) Code() int {
	switch a.Kind {
	case Draw:
		return DrawCode
	case Swap:
		if a.Card.Suit == Hearts {
			return a.Card.Face
		}
		return MaxFace + a.Card.Face
	default:
		return StopCode
	}
}

func ActionFromCode(code int) (Action, error) {
	switch {
	case code == DrawCode:
		return DrawAction(), nil
	case code == StopCode:
		return StopAction(), nil
	case code > DrawCode && code <= MaxFace:
		return SwapAction(Card{Face: code, Suit: Hearts}), nil
	case code > MaxFace && code < StopCode:
		return SwapAction(Card{Face: code - MaxFace, Suit: Diamonds}), nil
	}
	return Action{}, fmt.Errorf("action code %d out of range", code)
}

// AllActions lists every action in code order.
func AllActions() []Action {
	out := make([]Action, NumActions)
	for code := range out {
		out[code], _ = ActionFromCode(code)
	}
	return out
}

// Hash identifies the action in value tables.
func (a Action) Hash() string {
	return strconv.Itoa(a.Code())
}

func (a Action) String() string {
	switch a.Kind {
	case Draw:
		return "draw"
	case Swap:
		return "swap " + a.Card.String()
	default:
		return "stop"
	}
}
