// Package handeval evaluates the best 5-card hand from the client's own
// pocket and community cards, for display only. The server alone decides
// showdowns; this never feeds back into any outbound message.
package handeval

import (
	"sort"

	"github.com/cardroom/tableview/pkg/protocol"
)

// Evaluate returns the best rank achievable from 5-7 cards. ok is false for
// fewer than five cards, when no hand can be named yet.
func Evaluate(cards []protocol.Card) (rank protocol.HandRank, ok bool) {
	if len(cards) < 5 {
		return 0, false
	}
	if len(cards) == 5 {
		return evaluate5(cards), true
	}

	best := protocol.HighCard
	for _, combo := range combinations(len(cards), 5) {
		hand := make([]protocol.Card, 5)
		for i, idx := range combo {
			hand[i] = cards[idx]
		}
		if r := evaluate5(hand); r > best {
			best = r
		}
	}
	return best, true
}

func evaluate5(cards []protocol.Card) protocol.HandRank {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = protocol.RankValue(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := isFlush(cards)
	straight, straightHigh := isStraight(values)

	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	var pairs, trips, quads int
	for _, n := range counts {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	switch {
	case straight && flush && straightHigh == 14:
		return protocol.RoyalFlush
	case straight && flush:
		return protocol.StraightFlush
	case quads == 1:
		return protocol.FourOfAKind
	case trips == 1 && pairs == 1:
		return protocol.FullHouse
	case flush:
		return protocol.Flush
	case straight:
		return protocol.Straight
	case trips == 1:
		return protocol.ThreeOfAKind
	case pairs == 2:
		return protocol.TwoPair
	case pairs == 1:
		return protocol.OnePair
	}
	return protocol.HighCard
}

func isFlush(cards []protocol.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight expects values sorted descending. The wheel (A-5-4-3-2) counts
// with a high card of 5.
func isStraight(values []int) (bool, int) {
	for i := 1; i < len(values); i++ {
		if values[i-1] == values[i] {
			return false, 0
		}
	}

	if values[0]-values[len(values)-1] == len(values)-1 {
		return true, values[0]
	}

	// Ace low
	if values[0] == 14 {
		low := append([]int(nil), values[1:]...)
		low = append(low, 1)
		if low[0]-low[len(low)-1] == len(low)-1 {
			return true, low[0]
		}
	}
	return false, 0
}

// combinations returns all k-element index subsets of [0, n).
func combinations(n, k int) [][]int {
	var result [][]int
	combo := make([]int, k)

	var generate func(start, idx int)
	generate = func(start, idx int) {
		if idx == k {
			result = append(result, append([]int(nil), combo...))
			return
		}
		for i := start; i < n; i++ {
			combo[idx] = i
			generate(i+1, idx+1)
		}
	}
	generate(0, 0)
	return result
}
