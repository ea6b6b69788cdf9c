package compose

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/tableview/pkg/gameview"
	"github.com/cardroom/tableview/pkg/protocol"
)

type recordingSender struct {
	sent [][]byte
}

func (r *recordingSender) Send(_ context.Context, payload []byte) error {
	r.sent = append(r.sent, payload)
	return nil
}

func newTestComposer(t *testing.T, balance int64) (*Composer, *recordingSender, *gameview.View) {
	t.Helper()
	view := gameview.New(1)
	view.UpsertPlayer(protocol.PlayerSnapshot{ID: 1, Name: "me", Balance: balance})
	sender := &recordingSender{}
	return New(view, sender, "http://unused", zerolog.Nop()), sender, view
}

func TestRespond_CallSendsCallAmount(t *testing.T) {
	c, sender, view := newTestComposer(t, 1000)
	prompt := &gameview.TurnPrompt{
		Options:    []protocol.PlayerAction{protocol.ActionCall, protocol.ActionFold},
		CallAmount: 30,
	}
	view.SetPrompt(prompt)

	require.NoError(t, c.Respond(context.Background(), prompt, protocol.ActionCall))

	require.Len(t, sender.sent, 1)
	require.JSONEq(t, `{"TURN_RESPONSE": {"action": "CALL", "amount": 30}}`, string(sender.sent[0]))
	require.Nil(t, view.Snapshot().Prompt, "controls hide optimistically after send")
}

func TestRespond_CheckAndFoldSendZero(t *testing.T) {
	for _, action := range []protocol.PlayerAction{protocol.ActionCheck, protocol.ActionFold} {
		t.Run(string(action), func(t *testing.T) {
			c, sender, _ := newTestComposer(t, 1000)
			prompt := &gameview.TurnPrompt{CallAmount: 30}

			require.NoError(t, c.Respond(context.Background(), prompt, action))

			var envelope map[string]protocol.TurnResponse
			require.NoError(t, json.Unmarshal(sender.sent[0], &envelope))
			require.Equal(t, int64(0), envelope[protocol.TagTurnResponse].Amount)
		})
	}
}

func TestRaiseBounds(t *testing.T) {
	c, _, _ := newTestComposer(t, 480)
	prompt := &gameview.TurnPrompt{MinRaise: 20}

	min, max := c.RaiseBounds(prompt)
	require.Equal(t, int64(20), min, "lower bound is the server-supplied minimum raise")
	require.Equal(t, int64(480), max, "upper bound is the displayed balance")
}

func TestSubmitRaise_OutOfBoundsSendsNothing(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
	}{
		{"below minimum", 10},
		{"above balance", 501},
		{"negative", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, sender, view := newTestComposer(t, 500)
			prompt := &gameview.TurnPrompt{MinRaise: 20}
			view.SetPrompt(prompt)

			err := c.SubmitRaise(context.Background(), prompt, tc.amount)
			require.ErrorIs(t, err, protocol.ErrRaiseOutOfBounds)
			require.Empty(t, sender.sent, "rejected raise must not produce an outbound message")
			require.NotNil(t, view.Snapshot().Prompt, "prompt stays open for correction")
		})
	}
}

func TestSubmitRaise_ValidSends(t *testing.T) {
	c, sender, _ := newTestComposer(t, 500)
	prompt := &gameview.TurnPrompt{MinRaise: 20}

	require.NoError(t, c.SubmitRaise(context.Background(), prompt, 40))
	require.Len(t, sender.sent, 1)
	require.JSONEq(t, `{"TURN_RESPONSE": {"action": "RAISE", "amount": 40}}`, string(sender.sent[0]))
}

func TestSubmitRaise_BoundsInclusive(t *testing.T) {
	c, sender, _ := newTestComposer(t, 500)
	prompt := &gameview.TurnPrompt{MinRaise: 20}

	require.NoError(t, c.SubmitRaise(context.Background(), prompt, 20))
	require.NoError(t, c.SubmitRaise(context.Background(), prompt, 500))
	require.Len(t, sender.sent, 2)
}

func TestQuantizeRaise(t *testing.T) {
	require.Equal(t, int64(45), QuantizeRaise(47, 20, 500))
	require.Equal(t, int64(20), QuantizeRaise(3, 20, 500), "clamped to lower bound")
	require.Equal(t, int64(500), QuantizeRaise(9999, 20, 500), "clamped to upper bound")
}

func TestSnapToStep(t *testing.T) {
	c, _, _ := newTestComposer(t, 500)
	require.Equal(t, int64(45), c.SnapToStep(47))
	require.Equal(t, int64(0), c.SnapToStep(-3), "no clamping into bounds, validation decides")

	c.WithRaiseStep(25)
	require.Equal(t, int64(50), c.SnapToStep(70))
}

func TestSendReady_PostsOutOfBand(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	view := gameview.New(42)
	view.UpsertPlayer(protocol.PlayerSnapshot{ID: 42, Name: "me", Balance: 1000})
	c := New(view, &recordingSender{}, srv.URL+"/player-ready", zerolog.Nop())

	require.NoError(t, c.SendReady(context.Background(), true))
	require.Equal(t, "/player-ready/42", gotPath)
	require.JSONEq(t, `{"is_player_ready": true}`, string(gotBody))
	require.True(t, view.Snapshot().ReadyState)
}

func TestSendReady_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	view := gameview.New(42)
	c := New(view, &recordingSender{}, srv.URL+"/player-ready", zerolog.Nop())

	require.Error(t, c.SendReady(context.Background(), true))
	require.False(t, view.Snapshot().ReadyState, "rejected toggle must not flip local state")
}
