package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_Log(t *testing.T) {
	event := Decode([]byte(`{"LOG": "Player 42 joined"}`))
	log, ok := event.(LogEvent)
	require.True(t, ok, "expected LogEvent, got %T", event)
	require.Equal(t, "Player 42 joined", log.Message)
}

func TestDecode_NewPlayer(t *testing.T) {
	raw := `{"NEW_PLAYER": {"player": {"id": 17, "name": "alice", "balance": 1000, "is_ready": false}}}`
	event := Decode([]byte(raw))

	np, ok := event.(NewPlayerEvent)
	require.True(t, ok, "expected NewPlayerEvent, got %T", event)
	require.Equal(t, PlayerID(17), np.Player.ID)
	require.Equal(t, "alice", np.Player.Name)
	require.Equal(t, int64(1000), np.Player.Balance)
}

func TestDecode_PreStart(t *testing.T) {
	raw := `{"PRE_START": {
		"prev_dealer": {"id": 1, "name": "a", "balance": 990},
		"curr_dealer": {"id": 2, "name": "b", "balance": 1000},
		"ordered_player_ids": [1, 2, 3]
	}}`
	event := Decode([]byte(raw))

	ps, ok := event.(PreStartEvent)
	require.True(t, ok)
	require.Equal(t, PlayerID(2), ps.CurrDealer.ID)
	require.Equal(t, []PlayerID{1, 2, 3}, ps.OrderedPlayerIDs)
}

func TestDecode_Blinds(t *testing.T) {
	sb := Decode([]byte(`{"PRE_FLOP_SB": {"sb_amount": 5, "player": {"id": 1, "name": "a", "balance": 995}}}`))
	sbe, ok := sb.(SmallBlindEvent)
	require.True(t, ok)
	require.Equal(t, int64(5), sbe.Amount)

	bb := Decode([]byte(`{"PRE_FLOP_BB": {"bb_amount": 10, "player": {"id": 2, "name": "b", "balance": 990}}}`))
	bbe, ok := bb.(BigBlindEvent)
	require.True(t, ok)
	require.Equal(t, int64(10), bbe.Amount)
	require.Equal(t, int64(990), bbe.Player.Balance)
}

func TestDecode_TurnRequest(t *testing.T) {
	raw := `{"TURN_REQUEST": {"player_bet": 20, "prev_bet": 50, "prev_raise": 10, "options": ["CALL", "RAISE", "FOLD"]}}`
	event := Decode([]byte(raw))

	tr, ok := event.(TurnRequestEvent)
	require.True(t, ok)
	require.Equal(t, int64(20), tr.PlayerBet)
	require.Equal(t, int64(50), tr.PrevBet)
	require.Equal(t, []PlayerAction{ActionCall, ActionRaise, ActionFold}, tr.Options)
}

func TestDecode_TurnResult_ActionField(t *testing.T) {
	raw := `{"TURN_RESULT": {"player": {"id": 3, "name": "c", "balance": 970}, "action": "CALL", "amount": 30}}`
	event := Decode([]byte(raw))

	tr, ok := event.(TurnResultEvent)
	require.True(t, ok)
	require.Equal(t, ActionCall, tr.Action)
	require.Equal(t, int64(30), tr.Amount)
}

func TestDecode_TurnResult_LegacyChoiceAlias(t *testing.T) {
	raw := `{"TURN_RESULT": {"player": {"id": 3, "name": "c", "balance": 970}, "choice": "RAISE", "amount": 40}}`
	event := Decode([]byte(raw))

	tr, ok := event.(TurnResultEvent)
	require.True(t, ok)
	require.Equal(t, ActionRaise, tr.Action)
}

func TestDecode_TurnResult_ActionWinsOverChoice(t *testing.T) {
	raw := `{"TURN_RESULT": {"player": {"id": 3}, "action": "FOLD", "choice": "RAISE", "amount": 0}}`
	tr, ok := Decode([]byte(raw)).(TurnResultEvent)
	require.True(t, ok)
	require.Equal(t, ActionFold, tr.Action)
}

func TestDecode_TurnHighlight_NullCurrent(t *testing.T) {
	raw := `{"TURN_HIGHLIGHT": {"prev_player": {"id": 5, "name": "e"}, "curr_player": null}}`
	event := Decode([]byte(raw))

	th, ok := event.(TurnHighlightEvent)
	require.True(t, ok)
	require.Nil(t, th.CurrPlayer)
	require.Equal(t, PlayerID(5), th.PrevPlayer.ID)
}

func TestDecode_CommunityCards(t *testing.T) {
	raw := `{"COMMUNITY_CARDS": {"cards": [{"suit": "♥️", "rank": "A", "value": 14}, {"suit": "♠️", "rank": "10", "value": 10}]}}`
	event := Decode([]byte(raw))

	cc, ok := event.(CommunityCardsEvent)
	require.True(t, ok)
	require.Len(t, cc.Cards, 2)
	require.Equal(t, "♥️A", cc.Cards[0].String())
}

func TestDecode_ShowdownWinners(t *testing.T) {
	raw := `{"SHOWDOWN_WINNERS": {"winners": [{
		"winner": {"id": 7, "name": "g", "balance": 1200},
		"won_pot": 200,
		"hand": 8,
		"pocket_cards": [{"suit": "♦️", "rank": "9"}, {"suit": "♦️", "rank": "8"}]
	}]}}`
	event := Decode([]byte(raw))

	sw, ok := event.(ShowdownWinnersEvent)
	require.True(t, ok)
	require.Len(t, sw.Winners, 1)
	require.Equal(t, 8, sw.Winners[0].Hand)
	require.Equal(t, int64(200), sw.Winners[0].WonPot)
}

func TestDecode_PlayAgain(t *testing.T) {
	event := Decode([]byte(`{"PLAY_AGAIN": {}}`))
	_, ok := event.(PlayAgainEvent)
	require.True(t, ok)
}

func TestDecode_UnknownTag(t *testing.T) {
	event := Decode([]byte(`{"FOO": {}}`))
	log, ok := event.(LogEvent)
	require.True(t, ok, "unknown tags must degrade to LogEvent")
	require.Contains(t, log.Message, "FOO")
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{{{`,
		"not an object":     `[1,2,3]`,
		"two keys":          `{"POT": {"pot": 1}, "LOG": "x"}`,
		"bad payload shape": `{"POT": {"pot": "not-a-number"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			event := Decode([]byte(raw))
			_, ok := event.(LogEvent)
			require.True(t, ok, "malformed input must degrade to LogEvent, got %T", event)
		})
	}
}

func TestHandRank_Names(t *testing.T) {
	require.Equal(t, "High Card", HighCard.String())
	require.Equal(t, "Straight Flush", StraightFlush.String())
	require.Equal(t, "Royal Flush", RoyalFlush.String())
}

func TestHandRankFromOrdinal(t *testing.T) {
	rank, err := HandRankFromOrdinal(8)
	require.NoError(t, err)
	require.Equal(t, StraightFlush, rank)

	_, err = HandRankFromOrdinal(10)
	require.ErrorIs(t, err, ErrUnknownHandRank)

	_, err = HandRankFromOrdinal(-1)
	require.ErrorIs(t, err, ErrUnknownHandRank)
}

func TestEncodeTurnResponse(t *testing.T) {
	payload, err := EncodeTurnResponse(TurnResponse{Action: ActionRaise, Amount: 40})
	require.NoError(t, err)
	require.JSONEq(t, `{"TURN_RESPONSE": {"action": "RAISE", "amount": 40}}`, string(payload))
}

func TestPlayerAction_CarriesAmount(t *testing.T) {
	require.True(t, ActionCall.CarriesAmount())
	require.True(t, ActionRaise.CarriesAmount())
	require.False(t, ActionCheck.CarriesAmount())
	require.False(t, ActionFold.CarriesAmount())
	require.False(t, PlayerAction("TIMEOUT").Known())
}
