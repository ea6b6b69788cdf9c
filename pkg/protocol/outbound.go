package protocol

import "encoding/json"

// TagTurnResponse is the single outbound tag on the event channel.
const TagTurnResponse = "TURN_RESPONSE"

// TurnResponse is the client's answer to a TurnRequestEvent. Amount is
// meaningful only for call and raise and defaults to zero.
type TurnResponse struct {
	Action PlayerAction `json:"action"`
	Amount int64        `json:"amount"`
}

// EncodeTurnResponse wraps a turn response in the single-key envelope the
// server expects.
func EncodeTurnResponse(resp TurnResponse) ([]byte, error) {
	return json.Marshal(map[string]TurnResponse{TagTurnResponse: resp})
}

// ReadyRequest is the out-of-band ready toggle, POSTed over HTTP rather than
// sent on the event channel.
type ReadyRequest struct {
	IsPlayerReady bool `json:"is_player_ready"`
}
