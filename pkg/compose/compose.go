// Package compose builds and sends the client's outbound intents: the lobby
// ready toggle and turn responses. The one piece of nontrivial client logic
// lives here: bounding a raise amount before anything reaches the wire.
package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/cardroom/tableview/pkg/gameview"
	"github.com/cardroom/tableview/pkg/protocol"
)

// RaiseStep is the quantization step for the raise selector. Usability
// only; validation uses the exact bounds.
const RaiseStep int64 = 5

// Sender writes one text message to the event channel. Sends are
// fire-and-forget: no acknowledgment is awaited and no retry exists.
type Sender interface {
	Send(ctx context.Context, payload []byte) error
}

// Composer owns the outbound half of the session.
type Composer struct {
	view     *gameview.View
	sender   Sender
	readyURL string
	httpc    *http.Client
	step     int64
	log      zerolog.Logger
}

// New returns a composer. readyURL is the out-of-band ready endpoint base,
// e.g. "http://host:8000/player-ready"; the session id is appended per
// request.
func New(view *gameview.View, sender Sender, readyURL string, log zerolog.Logger) *Composer {
	return &Composer{
		view:     view,
		sender:   sender,
		readyURL: readyURL,
		httpc:    http.DefaultClient,
		step:     RaiseStep,
		log:      log,
	}
}

// WithHTTPClient overrides the HTTP client used for ready requests.
func (c *Composer) WithHTTPClient(httpc *http.Client) *Composer {
	c.httpc = httpc
	return c
}

// WithRaiseStep overrides the raise selector step.
func (c *Composer) WithRaiseStep(step int64) *Composer {
	if step > 0 {
		c.step = step
	}
	return c
}

// SnapToStep rounds a typed amount down to the selector step. The amount is
// not clamped; ValidateRaise still decides whether it may be sent.
func (c *Composer) SnapToStep(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return (amount / c.step) * c.step
}

// SendReady posts the ready toggle out of band. A pure toggle needs no
// validation; the local toggle state updates optimistically.
func (c *Composer) SendReady(ctx context.Context, ready bool) error {
	body, err := json.Marshal(protocol.ReadyRequest{IsPlayerReady: ready})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%d", c.readyURL, c.view.SelfID())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("ready request rejected: %s", resp.Status)
	}

	c.view.SetReadyState(ready)
	c.log.Info().Bool("ready", ready).Msg("ready state sent")
	return nil
}

// SendTurnResponse answers the pending turn request. The prompt is cleared
// before the send result is known: optimistic UI with no rollback path, by
// the same contract the server's own flow assumes.
func (c *Composer) SendTurnResponse(ctx context.Context, action protocol.PlayerAction, amount int64) error {
	payload, err := protocol.EncodeTurnResponse(protocol.TurnResponse{Action: action, Amount: amount})
	if err != nil {
		return err
	}

	c.view.TakePrompt()
	if err := c.sender.Send(ctx, payload); err != nil {
		return errors.Wrap(err, "send turn response")
	}
	c.log.Info().Str("action", string(action)).Int64("amount", amount).Msg("turn response sent")
	return nil
}

// Respond answers with a fixed-amount option: the call amount for CALL,
// zero for CHECK and FOLD. RAISE must go through SubmitRaise.
func (c *Composer) Respond(ctx context.Context, prompt *gameview.TurnPrompt, action protocol.PlayerAction) error {
	var amount int64
	if action == protocol.ActionCall {
		amount = prompt.CallAmount
	}
	return c.SendTurnResponse(ctx, action, amount)
}

// RaiseBounds returns the legal raise interval: lower bound is the
// server-supplied minimum raise, upper bound the player's displayed balance.
func (c *Composer) RaiseBounds(prompt *gameview.TurnPrompt) (min, max int64) {
	return prompt.MinRaise, c.view.SelfBalance()
}

// ValidateRaise rejects amounts outside [min raise, balance]. This is a UX
// guard only; the server remains the authority and may still reject.
func (c *Composer) ValidateRaise(prompt *gameview.TurnPrompt, amount int64) error {
	min, max := c.RaiseBounds(prompt)
	if amount < min || amount > max {
		return errors.Wrapf(protocol.ErrRaiseOutOfBounds, "%d not in [%d, %d]", amount, min, max)
	}
	return nil
}

// SubmitRaise validates and sends a raise. On a validation failure nothing
// is sent and the prompt stays open for correction.
func (c *Composer) SubmitRaise(ctx context.Context, prompt *gameview.TurnPrompt, amount int64) error {
	if err := c.ValidateRaise(prompt, amount); err != nil {
		c.log.Debug().Int64("amount", amount).Msg("raise rejected locally")
		return err
	}
	return c.SendTurnResponse(ctx, protocol.ActionRaise, amount)
}

// QuantizeRaise snaps an amount to the selector step, clamped to the legal
// interval.
func QuantizeRaise(amount, min, max int64) int64 {
	snapped := (amount / RaiseStep) * RaiseStep
	if snapped < min {
		snapped = min
	}
	if snapped > max {
		snapped = max
	}
	return snapped
}
