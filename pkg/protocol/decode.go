package protocol

import (
	"encoding/json"
	"fmt"
)

// Decode turns one raw inbound message into exactly one Event. Decoding is a
// total function over the tag space: unknown tags and malformed payloads
// degrade to a LogEvent carrying a diagnostic string, never an error. The
// dispatch loop must keep running no matter what the server sends.
func Decode(raw []byte) Event {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return LogEvent{Message: fmt.Sprintf("undecodable message: %v", err)}
	}
	if len(envelope) != 1 {
		return LogEvent{Message: fmt.Sprintf("expected single-key envelope, got %d keys", len(envelope))}
	}

	for tag, payload := range envelope {
		return decodeTagged(tag, payload)
	}
	return LogEvent{Message: "empty envelope"}
}

func decodeTagged(tag string, payload json.RawMessage) Event {
	var (
		event Event
		err   error
	)

	switch tag {
	case TagLog:
		var msg string
		if err = json.Unmarshal(payload, &msg); err == nil {
			event = LogEvent{Message: msg}
		}
	case TagNewPlayer:
		event, err = unmarshalEvent[NewPlayerEvent](payload)
	case TagPreStart:
		event, err = unmarshalEvent[PreStartEvent](payload)
	case TagPreFlopSB:
		event, err = unmarshalEvent[SmallBlindEvent](payload)
	case TagPreFlopBB:
		event, err = unmarshalEvent[BigBlindEvent](payload)
	case TagPocketCards:
		event, err = unmarshalEvent[PocketCardsEvent](payload)
	case TagTurnRequest:
		event, err = unmarshalEvent[TurnRequestEvent](payload)
	case TagTurnResult:
		event, err = decodeTurnResult(payload)
	case TagPot:
		event, err = unmarshalEvent[PotEvent](payload)
	case TagTurnHighlight:
		event, err = unmarshalEvent[TurnHighlightEvent](payload)
	case TagIsReady:
		event, err = unmarshalEvent[IsReadyEvent](payload)
	case TagCommunityCards:
		event, err = unmarshalEvent[CommunityCardsEvent](payload)
	case TagShowdownWinners:
		event, err = unmarshalEvent[ShowdownWinnersEvent](payload)
	case TagShowdownLosers:
		event, err = unmarshalEvent[ShowdownLosersEvent](payload)
	case TagPlayAgain:
		event = PlayAgainEvent{}
	default:
		return LogEvent{Message: fmt.Sprintf("unknown event tag %q", tag)}
	}

	if err != nil {
		return LogEvent{Message: fmt.Sprintf("malformed %s payload: %v", tag, err)}
	}
	return event
}

func unmarshalEvent[T Event](payload json.RawMessage) (Event, error) {
	var event T
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return event, nil
}

// decodeTurnResult handles the legacy field naming of turn results: newer
// servers send "action", older ones "choice". "action" wins when both are
// present.
func decodeTurnResult(payload json.RawMessage) (Event, error) {
	var wire struct {
		Player PlayerSnapshot `json:"player"`
		Action PlayerAction   `json:"action"`
		Choice PlayerAction   `json:"choice"`
		Amount int64          `json:"amount"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, err
	}

	action := wire.Action
	if action == "" {
		action = wire.Choice
	}
	return TurnResultEvent{
		Player: wire.Player,
		Action: action,
		Amount: wire.Amount,
	}, nil
}
