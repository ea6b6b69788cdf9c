// Package dispatch routes decoded inbound events to their state mutations.
// The dispatcher itself is stateless between calls; the event sequence
// drives the view through the server-defined hand lifecycle.
package dispatch

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cardroom/tableview/pkg/gameview"
	"github.com/cardroom/tableview/pkg/protocol"
)

// Dispatcher applies one inbound message at a time to the game view. Every
// known tag maps to exactly one handler; unknown tags and undecodable
// payloads fall back to the log handler. No handler ever stops the loop.
type Dispatcher struct {
	view *gameview.View
	log  zerolog.Logger
}

// New returns a dispatcher mutating the given view.
func New(view *gameview.View, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{view: view, log: log}
}

// Handle decodes one raw message and invokes its handler synchronously,
// exactly once, before the caller feeds the next message.
func (d *Dispatcher) Handle(raw []byte) {
	d.HandleEvent(protocol.Decode(raw))
}

// HandleEvent routes an already-decoded event.
func (d *Dispatcher) HandleEvent(event protocol.Event) {
	switch e := event.(type) {
	case protocol.LogEvent:
		d.view.AppendLog(e.Message)
	case protocol.NewPlayerEvent:
		d.handleNewPlayer(e)
	case protocol.PreStartEvent:
		d.handlePreStart(e)
	case protocol.SmallBlindEvent:
		d.handleBlind(e.Player, "Small blind", e.Amount)
	case protocol.BigBlindEvent:
		d.handleBlind(e.Player, "Big blind", e.Amount)
	case protocol.PocketCardsEvent:
		d.view.SetSelfPockets(e.PocketCards)
	case protocol.TurnRequestEvent:
		d.handleTurnRequest(e)
	case protocol.TurnResultEvent:
		d.handleTurnResult(e)
	case protocol.PotEvent:
		d.view.SetPot(e.Pot)
	case protocol.TurnHighlightEvent:
		d.handleTurnHighlight(e)
	case protocol.IsReadyEvent:
		d.handleIsReady(e)
	case protocol.CommunityCardsEvent:
		d.view.ClearAnnotationsKeepFolded()
		d.view.AppendCommunity(e.Cards)
	case protocol.ShowdownWinnersEvent:
		d.handleShowdownWinners(e)
	case protocol.ShowdownLosersEvent:
		d.handleShowdownLosers(e)
	case protocol.PlayAgainEvent:
		d.view.ResetReadyControl()
	default:
		// Decode is total over the tag space, so this is unreachable for
		// server input; guard anyway for events constructed in tests.
		d.view.AppendLog(fmt.Sprintf("unhandled event %T", event))
	}
}

func (d *Dispatcher) handleNewPlayer(e protocol.NewPlayerEvent) {
	d.view.UpsertPlayer(e.Player)
	if e.Player.ID == d.view.SelfID() {
		d.view.ShowReadyControl(true)
		d.log.Info().Int64("player_id", int64(e.Player.ID)).Msg("joined table as self")
	}
}

func (d *Dispatcher) handlePreStart(e protocol.PreStartEvent) {
	d.view.BeginHand(e.CurrDealer.ID, e.OrderedPlayerIDs)
	d.log.Info().
		Int64("dealer_id", int64(e.CurrDealer.ID)).
		Int("seats", len(e.OrderedPlayerIDs)).
		Msg("hand started")
}

func (d *Dispatcher) handleBlind(player protocol.PlayerSnapshot, label string, amount int64) {
	if !d.view.Knows(player.ID) {
		d.skipUnknown("blind", player.ID)
		return
	}
	d.view.SetAnnotation(player.ID, gameview.AnnotationBlind, fmt.Sprintf("%s: $%d", label, amount))
	d.view.SetBalance(player.ID, player.Balance)
	d.view.AppendLog(fmt.Sprintf("%s: %s: $%d", player.Name, label, amount))
}

func (d *Dispatcher) handleTurnRequest(e protocol.TurnRequestEvent) {
	// Call amount is the table's outstanding bet minus what this player has
	// already committed this round; both numbers come from the server.
	d.view.SetPrompt(&gameview.TurnPrompt{
		Options:    e.Options,
		CallAmount: e.PrevBet - e.PlayerBet,
		MinRaise:   e.PrevRaise,
	})
}

func (d *Dispatcher) handleTurnResult(e protocol.TurnResultEvent) {
	if !d.view.Knows(e.Player.ID) {
		d.skipUnknown("turn result", e.Player.ID)
		return
	}
	d.view.SetBalance(e.Player.ID, e.Player.Balance)

	var annotation, suffix string
	switch e.Action {
	case protocol.ActionCall:
		annotation = fmt.Sprintf("Call: $%d", e.Amount)
		suffix = fmt.Sprintf("called $%d", e.Amount)
	case protocol.ActionRaise:
		annotation = fmt.Sprintf("Raise: $%d", e.Amount)
		suffix = fmt.Sprintf("raised to $%d", e.Amount)
	case protocol.ActionCheck:
		annotation = "Check"
		suffix = "checked"
	case protocol.ActionFold:
		annotation = "Folded"
		suffix = "folded"
	default:
		// Unrecognized actions still update the balance above; surface a
		// generic message instead of failing.
		annotation = string(e.Action)
		suffix = fmt.Sprintf("acted (%s)", e.Action)
	}
	d.view.SetAnnotation(e.Player.ID, gameview.AnnotationAction, annotation)
	d.view.AppendLog(fmt.Sprintf("%s %s", e.Player.Name, suffix))
}

func (d *Dispatcher) handleTurnHighlight(e protocol.TurnHighlightEvent) {
	// A single holder field makes "clear prev, set curr" one write; absence
	// of curr_player means no one is highlighted.
	if e.CurrPlayer == nil {
		d.view.SetHighlight(0)
		return
	}
	if !d.view.Knows(e.CurrPlayer.ID) {
		d.skipUnknown("turn highlight", e.CurrPlayer.ID)
		d.view.SetHighlight(0)
		return
	}
	d.view.SetHighlight(e.CurrPlayer.ID)
}

func (d *Dispatcher) handleIsReady(e protocol.IsReadyEvent) {
	if !d.view.Knows(e.PlayerID) {
		d.skipUnknown("ready state", e.PlayerID)
		return
	}
	glyph := "❌"
	if e.IsReady {
		glyph = "✅"
	}
	d.view.SetAnnotation(e.PlayerID, gameview.AnnotationReady, glyph)
}

func (d *Dispatcher) handleShowdownWinners(e protocol.ShowdownWinnersEvent) {
	for _, w := range e.Winners {
		if !d.view.Knows(w.Winner.ID) {
			d.skipUnknown("showdown winner", w.Winner.ID)
			continue
		}
		d.view.RevealPockets(w.Winner.ID, w.PocketCards)
		d.view.SetBalance(w.Winner.ID, w.Winner.Balance)

		rank, err := protocol.HandRankFromOrdinal(w.Hand)
		if err != nil {
			d.surfaceRankError(w.Winner.Name, err)
			continue
		}
		d.view.SetAnnotation(w.Winner.ID, gameview.AnnotationHandResult, rank.String()+" winner")
		d.view.AppendLog(fmt.Sprintf("%s wins $%d with %s", w.Winner.Name, w.WonPot, rank))
	}
}

func (d *Dispatcher) handleShowdownLosers(e protocol.ShowdownLosersEvent) {
	for _, l := range e.Losers {
		if !d.view.Knows(l.Player.ID) {
			d.skipUnknown("showdown loser", l.Player.ID)
			continue
		}
		d.view.RevealPockets(l.Player.ID, l.PocketCards)
		d.view.SetBalance(l.Player.ID, l.Player.Balance)

		rank, err := protocol.HandRankFromOrdinal(l.Hand)
		if err != nil {
			d.surfaceRankError(l.Player.Name, err)
			continue
		}
		d.view.SetAnnotation(l.Player.ID, gameview.AnnotationHandResult, rank.String())
	}
}

// skipUnknown records a guarded no-op: the event referenced a player the
// view has never seen, which is recoverable by skipping that one mutation.
func (d *Dispatcher) skipUnknown(context string, id protocol.PlayerID) {
	d.log.Debug().
		Str("context", context).
		Int64("player_id", int64(id)).
		Msg("event references unknown player, skipping")
}

func (d *Dispatcher) surfaceRankError(name string, err error) {
	d.log.Error().Err(err).Str("player", name).Msg("showdown hand rank out of range")
	d.view.AppendLog(fmt.Sprintf("showdown: %v", err))
}
