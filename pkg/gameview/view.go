// Package gameview holds the client-local projection of table state. The
// projection is rebuilt incrementally from the server's event stream and is
// never told the full state in one shot, so every mutation here is written
// to keep the view consistent with server truth.
package gameview

import (
	"sync"

	"github.com/cardroom/tableview/pkg/protocol"
)

// maxLogLines bounds the game log ring.
const maxLogLines = 128

// AnnotationKind classifies the single transient status shown under a
// player. Kinds are mutually exclusive; the latest write wins.
type AnnotationKind int

const (
	AnnotationNone AnnotationKind = iota
	AnnotationBlind
	AnnotationAction
	AnnotationReady
	AnnotationHandResult
)

// Annotation is the transient per-player status text.
type Annotation struct {
	Kind AnnotationKind `json:"kind"`
	Text string         `json:"text"`
}

// Folded reports whether the annotation marks a folded player. Folded
// players keep their annotation when community cards clear everyone else's.
func (a Annotation) Folded() bool {
	return a.Kind == AnnotationAction && a.Text == "Folded"
}

// Player is one table participant. Players are created on NEW_PLAYER and
// persist across hands for the rest of the session.
type Player struct {
	ID      protocol.PlayerID `json:"id"`
	Name    string            `json:"name"`
	Balance int64             `json:"balance"`
}

// TurnPrompt is a pending request for the client to act, kept on the view
// until the composer answers it or the server moves on.
type TurnPrompt struct {
	Options    []protocol.PlayerAction `json:"options"`
	CallAmount int64                   `json:"call_amount"`
	MinRaise   int64                   `json:"min_raise"`
}

// View is the mutable game state projection. The dispatch loop is its only
// writer (events are processed strictly one at a time); the renderer and the
// debug endpoint read snapshots concurrently, hence the mutex.
type View struct {
	mu sync.RWMutex

	selfID      protocol.PlayerID
	players     map[protocol.PlayerID]*Player
	seating     []protocol.PlayerID
	pot         int64
	dealer      protocol.PlayerID
	highlight   protocol.PlayerID
	annotations map[protocol.PlayerID]Annotation
	pockets     map[protocol.PlayerID][]protocol.Card
	community   []protocol.Card

	readyVisible bool
	readyState   bool
	prompt       *TurnPrompt
	logs         []string
}

// New returns an empty view for one session. selfID is the client's own
// identity and is fixed for the session's lifetime.
func New(selfID protocol.PlayerID) *View {
	return &View{
		selfID:      selfID,
		players:     make(map[protocol.PlayerID]*Player),
		annotations: make(map[protocol.PlayerID]Annotation),
		pockets:     make(map[protocol.PlayerID][]protocol.Card),
	}
}

// SelfID returns the client's own player identity.
func (v *View) SelfID() protocol.PlayerID {
	return v.selfID
}

// UpsertPlayer inserts or refreshes a player entry from a server snapshot.
func (v *View) UpsertPlayer(snap protocol.PlayerSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if p, ok := v.players[snap.ID]; ok {
		p.Name = snap.Name
		p.Balance = snap.Balance
		return
	}
	v.players[snap.ID] = &Player{ID: snap.ID, Name: snap.Name, Balance: snap.Balance}
	v.seating = append(v.seating, snap.ID)
}

// Knows reports whether a player identity exists in the mapping. Handlers
// use it to guard mutations so an event referencing an unknown player
// becomes a no-op instead of a dangling reference.
func (v *View) Knows(id protocol.PlayerID) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.players[id]
	return ok
}

// SetBalance applies a server-reported balance. Returns false when the
// player is unknown.
func (v *View) SetBalance(id protocol.PlayerID, balance int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	p, ok := v.players[id]
	if !ok {
		return false
	}
	p.Balance = balance
	return true
}

// SelfBalance returns the client's own displayed balance, used as the upper
// raise bound. Zero when self has not joined yet.
func (v *View) SelfBalance() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if p, ok := v.players[v.selfID]; ok {
		return p.Balance
	}
	return 0
}

// BeginHand resets all per-hand state: annotations, pocket cards and
// community cards are cleared, the dealer chip moves, the ready control
// hides, and the seating order is replaced for the layout collaborator.
func (v *View) BeginHand(dealer protocol.PlayerID, seating []protocol.PlayerID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.annotations = make(map[protocol.PlayerID]Annotation)
	v.pockets = make(map[protocol.PlayerID][]protocol.Card)
	v.community = nil
	v.readyVisible = false
	v.prompt = nil

	if _, ok := v.players[dealer]; ok {
		v.dealer = dealer
	} else {
		v.dealer = 0
	}
	if len(seating) > 0 {
		v.seating = append([]protocol.PlayerID(nil), seating...)
	}
}

// Dealer returns the current dealer identity, zero when no hand has started.
func (v *View) Dealer() protocol.PlayerID {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dealer
}

// SetAnnotation writes a player's transient annotation. Returns false when
// the player is unknown.
func (v *View) SetAnnotation(id protocol.PlayerID, kind AnnotationKind, text string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.players[id]; !ok {
		return false
	}
	v.annotations[id] = Annotation{Kind: kind, Text: text}
	return true
}

// ClearAnnotationsKeepFolded wipes every annotation except those of folded
// players, which survive until the hand ends.
func (v *View) ClearAnnotationsKeepFolded() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for id, ann := range v.annotations {
		if !ann.Folded() {
			delete(v.annotations, id)
		}
	}
}

// SetSelfPockets populates the client's own hole card slots. When fewer than
// two cards are supplied the remainder stays empty.
func (v *View) SetSelfPockets(cards []protocol.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pockets[v.selfID] = normalizeCards(cards, 2)
}

// RevealPockets shows a player's full hole cards at showdown. Returns false
// when the player is unknown.
func (v *View) RevealPockets(id protocol.PlayerID, cards []protocol.Card) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.players[id]; !ok {
		return false
	}
	v.pockets[id] = normalizeCards(cards, 2)
	return true
}

// AppendCommunity merges the server's community card list into the view.
// The server resends the full list on every reveal; only cards beyond the
// ones already shown are appended, so the count never shrinks mid-hand.
func (v *View) AppendCommunity(cards []protocol.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(cards) <= len(v.community) {
		return
	}
	for _, c := range cards[len(v.community):] {
		v.community = append(v.community, c.Normalize())
	}
}

// SetHighlight moves the turn highlight from prev to curr. A zero curr
// leaves no one highlighted. At most one player holds the highlight.
func (v *View) SetHighlight(curr protocol.PlayerID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if curr != 0 {
		if _, ok := v.players[curr]; !ok {
			v.highlight = 0
			return
		}
	}
	v.highlight = curr
}

// SetPot replaces the displayed pot.
func (v *View) SetPot(pot int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pot = pot
}

// ShowReadyControl reveals or hides the ready toggle.
func (v *View) ShowReadyControl(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.readyVisible = visible
}

// ResetReadyControl returns the toggle to its not-ready state and reveals
// it, as happens when the server offers another hand.
func (v *View) ResetReadyControl() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.readyState = false
	v.readyVisible = true
}

// SetReadyState records the client's own optimistic toggle state.
func (v *View) SetReadyState(ready bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.readyState = ready
}

// SetPrompt records a pending turn request.
func (v *View) SetPrompt(p *TurnPrompt) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prompt = p
}

// TakePrompt removes and returns the pending turn prompt, nil when none is
// pending. Taking the prompt is the optimistic "hide the controls" step.
func (v *View) TakePrompt() *TurnPrompt {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.prompt
	v.prompt = nil
	return p
}

// AppendLog adds one line to the bounded game log.
func (v *View) AppendLog(line string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.logs = append(v.logs, line)
	if len(v.logs) > maxLogLines {
		v.logs = v.logs[len(v.logs)-maxLogLines:]
	}
}

func normalizeCards(cards []protocol.Card, max int) []protocol.Card {
	if len(cards) > max {
		cards = cards[:max]
	}
	out := make([]protocol.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Normalize())
	}
	return out
}
