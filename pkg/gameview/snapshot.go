package gameview

import "github.com/cardroom/tableview/pkg/protocol"

// Snapshot is an immutable copy of the view, safe to hand to the renderer
// and the debug endpoint while the dispatch loop keeps mutating the view.
type Snapshot struct {
	SelfID      protocol.PlayerID                      `json:"self_id"`
	Players     []Player                               `json:"players"`
	Seating     []protocol.PlayerID                    `json:"seating"`
	Pot         int64                                  `json:"pot"`
	Dealer      protocol.PlayerID                      `json:"dealer,omitempty"`
	Highlight   protocol.PlayerID                      `json:"highlight,omitempty"`
	Annotations map[protocol.PlayerID]Annotation       `json:"annotations,omitempty"`
	Pockets     map[protocol.PlayerID][]protocol.Card  `json:"pockets,omitempty"`
	Community   []protocol.Card                        `json:"community,omitempty"`
	ReadyShown  bool                                   `json:"ready_shown"`
	ReadyState  bool                                   `json:"ready_state"`
	Prompt      *TurnPrompt                            `json:"prompt,omitempty"`
	Logs        []string                               `json:"logs,omitempty"`
}

// Snapshot copies the current state. Players follow seating order; players
// not yet seated (mid-join) come after, in map order.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snap := Snapshot{
		SelfID:     v.selfID,
		Pot:        v.pot,
		Dealer:     v.dealer,
		Highlight:  v.highlight,
		ReadyShown: v.readyVisible,
		ReadyState: v.readyState,
	}

	snap.Seating = append([]protocol.PlayerID(nil), v.seating...)
	seen := make(map[protocol.PlayerID]bool, len(v.players))
	for _, id := range v.seating {
		if p, ok := v.players[id]; ok && !seen[id] {
			snap.Players = append(snap.Players, *p)
			seen[id] = true
		}
	}
	for id, p := range v.players {
		if !seen[id] {
			snap.Players = append(snap.Players, *p)
		}
	}

	if len(v.annotations) > 0 {
		snap.Annotations = make(map[protocol.PlayerID]Annotation, len(v.annotations))
		for id, ann := range v.annotations {
			snap.Annotations[id] = ann
		}
	}
	if len(v.pockets) > 0 {
		snap.Pockets = make(map[protocol.PlayerID][]protocol.Card, len(v.pockets))
		for id, cards := range v.pockets {
			snap.Pockets[id] = append([]protocol.Card(nil), cards...)
		}
	}
	snap.Community = append([]protocol.Card(nil), v.community...)
	snap.Logs = append([]string(nil), v.logs...)

	if v.prompt != nil {
		p := *v.prompt
		p.Options = append([]protocol.PlayerAction(nil), v.prompt.Options...)
		snap.Prompt = &p
	}
	return snap
}

// PlayerByID finds a player in the snapshot.
func (s Snapshot) PlayerByID(id protocol.PlayerID) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
