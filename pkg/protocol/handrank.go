package protocol

import "cosmossdk.io/errors"

// HandRank is the ordinal ranking of a showdown hand as reported by the
// server: High Card = 0 through Royal Flush = 9.
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handRankNames = []string{
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
	"Royal Flush",
}

// String returns the display name of the hand rank.
func (r HandRank) String() string {
	if r >= 0 && int(r) < len(handRankNames) {
		return handRankNames[r]
	}
	return "Unknown"
}

// HandRankFromOrdinal converts a server-supplied ordinal into a HandRank.
// An out-of-range ordinal is an error the caller must surface.
func HandRankFromOrdinal(ordinal int) (HandRank, error) {
	if ordinal < 0 || ordinal >= len(handRankNames) {
		return 0, errors.Wrapf(ErrUnknownHandRank, "ordinal %d", ordinal)
	}
	return HandRank(ordinal), nil
}
