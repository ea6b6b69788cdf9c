package protocol

import "cosmossdk.io/errors"

// Codespace for tableview sentinel errors.
const Codespace = "tableview"

var (
	ErrMalformedEnvelope = errors.Register(Codespace, 1100, "malformed message envelope")
	ErrMalformedPayload  = errors.Register(Codespace, 1101, "malformed event payload")
	ErrUnknownHandRank   = errors.Register(Codespace, 1102, "unknown hand rank ordinal")
	ErrUnknownPlayer     = errors.Register(Codespace, 1103, "event references unknown player")
	ErrRaiseOutOfBounds  = errors.Register(Codespace, 1104, "raise amount out of bounds")
	ErrNoTurnPending     = errors.Register(Codespace, 1105, "no turn request pending")
	ErrConnectionClosed  = errors.Register(Codespace, 1106, "connection closed")
)
