package protocol

// Inbound event tags. The envelope is a single-key JSON object whose key is
// one of these tags and whose value is the tag-specific payload.
const (
	TagLog             = "LOG"
	TagNewPlayer       = "NEW_PLAYER"
	TagPreStart        = "PRE_START"
	TagPreFlopSB       = "PRE_FLOP_SB"
	TagPreFlopBB       = "PRE_FLOP_BB"
	TagPocketCards     = "POCKET_CARDS"
	TagTurnRequest     = "TURN_REQUEST"
	TagTurnResult      = "TURN_RESULT"
	TagPot             = "POT"
	TagTurnHighlight   = "TURN_HIGHLIGHT"
	TagIsReady         = "IS_READY"
	TagCommunityCards  = "COMMUNITY_CARDS"
	TagShowdownWinners = "SHOWDOWN_WINNERS"
	TagShowdownLosers  = "SHOWDOWN_LOSERS"
	TagPlayAgain       = "PLAY_AGAIN"
)

// PlayerID identifies a player for the lifetime of their connection.
type PlayerID int64

// PlayerSnapshot is the server's view of a player at the moment an event
// was emitted. Balance is authoritative whenever a snapshot carries it.
type PlayerSnapshot struct {
	ID      PlayerID `json:"id"`
	Name    string   `json:"name"`
	Balance int64    `json:"balance"`
	IsReady bool     `json:"is_ready"`
}

// Event is the closed set of inbound phase-change notifications. Exactly one
// concrete variant exists per tag; unknown tags decode to LogEvent.
type Event interface {
	isEvent()
}

// LogEvent carries a free-text log line. It doubles as the fallback variant
// for unknown tags and undecodable payloads.
type LogEvent struct {
	Message string
}

// NewPlayerEvent announces a player joining the table, self included.
type NewPlayerEvent struct {
	Player PlayerSnapshot `json:"player"`
}

// PreStartEvent marks the start of a new hand.
type PreStartEvent struct {
	PrevDealer       PlayerSnapshot `json:"prev_dealer"`
	CurrDealer       PlayerSnapshot `json:"curr_dealer"`
	OrderedPlayerIDs []PlayerID     `json:"ordered_player_ids"`
}

// SmallBlindEvent reports the small blind being posted.
type SmallBlindEvent struct {
	Amount int64          `json:"sb_amount"`
	Player PlayerSnapshot `json:"player"`
}

// BigBlindEvent reports the big blind being posted.
type BigBlindEvent struct {
	Amount int64          `json:"bb_amount"`
	Player PlayerSnapshot `json:"player"`
}

// PocketCardsEvent delivers the client's own hole cards. It is the only
// event addressed personally rather than broadcast.
type PocketCardsEvent struct {
	PocketCards []Card `json:"pocket_cards"`
}

// TurnRequestEvent asks the client to act. PrevBet is the table's current
// outstanding bet, PlayerBet what this player has already committed this
// round, PrevRaise the minimum raise.
type TurnRequestEvent struct {
	PlayerBet int64          `json:"player_bet"`
	PrevBet   int64          `json:"prev_bet"`
	PrevRaise int64          `json:"prev_raise"`
	Options   []PlayerAction `json:"options"`
}

// TurnResultEvent reports another player's resolved action.
type TurnResultEvent struct {
	Player PlayerSnapshot `json:"player"`
	Action PlayerAction   `json:"action"`
	Amount int64          `json:"amount"`
}

// PotEvent replaces the displayed pot.
type PotEvent struct {
	Pot int64 `json:"pot"`
}

// TurnHighlightEvent moves the turn highlight. A nil CurrPlayer means no one
// holds the turn, e.g. between hands.
type TurnHighlightEvent struct {
	PrevPlayer PlayerSnapshot  `json:"prev_player"`
	CurrPlayer *PlayerSnapshot `json:"curr_player"`
}

// IsReadyEvent reports a player's lobby ready state.
type IsReadyEvent struct {
	PlayerID PlayerID `json:"player_id"`
	IsReady  bool     `json:"is_ready"`
}

// CommunityCardsEvent delivers the community cards revealed so far,
// earliest first.
type CommunityCardsEvent struct {
	Cards []Card `json:"cards"`
}

// ShowdownWinner is one winning player with their revealed hand.
type ShowdownWinner struct {
	Winner      PlayerSnapshot `json:"winner"`
	WonPot      int64          `json:"won_pot"`
	Hand        int            `json:"hand"`
	PocketCards []Card         `json:"pocket_cards"`
}

// ShowdownWinnersEvent reports the winners of a showdown.
type ShowdownWinnersEvent struct {
	Winners []ShowdownWinner `json:"winners"`
}

// ShowdownLoser is one losing player with their revealed hand.
type ShowdownLoser struct {
	Player      PlayerSnapshot `json:"player"`
	Hand        int            `json:"hand"`
	PocketCards []Card         `json:"pocket_cards"`
}

// ShowdownLosersEvent reports the losers of a showdown.
type ShowdownLosersEvent struct {
	Losers []ShowdownLoser `json:"losers"`
}

// PlayAgainEvent invites the table to ready up for another hand.
type PlayAgainEvent struct{}

func (LogEvent) isEvent()             {}
func (NewPlayerEvent) isEvent()       {}
func (PreStartEvent) isEvent()        {}
func (SmallBlindEvent) isEvent()      {}
func (BigBlindEvent) isEvent()        {}
func (PocketCardsEvent) isEvent()     {}
func (TurnRequestEvent) isEvent()     {}
func (TurnResultEvent) isEvent()      {}
func (PotEvent) isEvent()             {}
func (TurnHighlightEvent) isEvent()   {}
func (IsReadyEvent) isEvent()         {}
func (CommunityCardsEvent) isEvent()  {}
func (ShowdownWinnersEvent) isEvent() {}
func (ShowdownLosersEvent) isEvent()  {}
func (PlayAgainEvent) isEvent()       {}
