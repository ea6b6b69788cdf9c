package protocol

// Card represents a playing card as dealt by the server. Cards are
// immutable once received; the client never constructs its own deck.
type Card struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

// String renders the card the way the table shows it, suit glyph first.
func (c Card) String() string {
	return c.Suit + c.Rank
}

// RankValue returns the comparable value of a rank string, with ace high.
// Unknown ranks map to 0 so a malformed card sorts last instead of failing.
func RankValue(rank string) int {
	switch rank {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	case "10", "T":
		return 10
	case "9":
		return 9
	case "8":
		return 8
	case "7":
		return 7
	case "6":
		return 6
	case "5":
		return 5
	case "4":
		return 4
	case "3":
		return 3
	case "2":
		return 2
	}
	return 0
}

// Normalize fills in a missing Value from the rank. Some server builds omit
// the value field on community cards.
func (c Card) Normalize() Card {
	if c.Value == 0 {
		c.Value = RankValue(c.Rank)
	}
	return c
}
