package game

import (
	"golang.org/x/exp/slices"
)

// EnumerateStates returns every hand reachable from the empty hand by adding
// one card at a time while the face sum stays below threshold. The result is
// sorted canonically and always contains the empty hand.
func EnumerateStates(threshold int) []Hand {
	visited := map[Hand]struct{}{EmptyHand: {}}
	queue := []Hand{EmptyHand}

	for len(queue) > 0 {
		hand := queue[0]
		queue = queue[1:]
		sum := hand.Sum()
		for _, c := range deck {
			if hand.Has(c) || sum+c.Face >= threshold {
				continue
			}
			next := hand.With(c)
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	out := make([]Hand, 0, len(visited))
	for h := range visited {
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b Hand) int { return a.Compare(b) })
	return out
}
