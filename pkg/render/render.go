// Package render draws the game view in the terminal with pterm. It reads
// snapshots only and owns no game state.
package render

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/cardroom/tableview/pkg/gameview"
	"github.com/cardroom/tableview/pkg/handeval"
	"github.com/cardroom/tableview/pkg/protocol"
)

// logTail is how many log lines the log panel shows.
const logTail = 8

// Renderer repaints the table into a pterm area.
type Renderer struct {
	area *pterm.AreaPrinter
}

// New starts a full-screen render area.
func New() (*Renderer, error) {
	area, err := pterm.DefaultArea.WithFullscreen().Start()
	if err != nil {
		return nil, err
	}
	return &Renderer{area: area}, nil
}

// Stop releases the render area.
func (r *Renderer) Stop() error {
	return r.area.Stop()
}

// Render repaints the whole view from one snapshot.
func (r *Renderer) Render(snap gameview.Snapshot) {
	r.area.Update(Compose(snap))
}

// Compose renders a snapshot to a string. Split from Render so tests need
// no terminal.
func Compose(snap gameview.Snapshot) string {
	var b strings.Builder

	table := pterm.TableData{{"", "Player", "Balance", "Status", "Cards"}}
	for _, p := range snap.Players {
		table = append(table, []string{
			markers(snap, p.ID),
			playerName(snap, p),
			fmt.Sprintf("$%d", p.Balance),
			snap.Annotations[p.ID].Text,
			cardLine(snap.Pockets[p.ID]),
		})
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(table).Srender()
	if err == nil {
		b.WriteString(rendered)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\nPot: $%d    Board: %s\n", snap.Pot, cardLine(snap.Community)))

	if self, ok := snap.Pockets[snap.SelfID]; ok && len(self) == 2 {
		held := append(append([]protocol.Card(nil), self...), snap.Community...)
		if rank, ok := handeval.Evaluate(held); ok {
			b.WriteString(pterm.Gray(fmt.Sprintf("You hold: %s\n", rank)))
		}
	}

	if snap.ReadyShown {
		state := pterm.Red("not ready")
		if snap.ReadyState {
			state = pterm.Green("ready")
		}
		b.WriteString(fmt.Sprintf("\n[r] toggle ready (currently %s)\n", state))
	}

	if snap.Prompt != nil {
		opts := make([]string, len(snap.Prompt.Options))
		for i, o := range snap.Prompt.Options {
			opts[i] = string(o)
		}
		b.WriteString(pterm.Yellow(fmt.Sprintf("\nYour turn: %s (call $%d, min raise $%d)\n",
			strings.Join(opts, "/"), snap.Prompt.CallAmount, snap.Prompt.MinRaise)))
	}

	if len(snap.Logs) > 0 {
		b.WriteString("\n")
		start := len(snap.Logs) - logTail
		if start < 0 {
			start = 0
		}
		for _, line := range snap.Logs[start:] {
			b.WriteString(pterm.Gray("· " + line + "\n"))
		}
	}
	return b.String()
}

func playerName(snap gameview.Snapshot, p gameview.Player) string {
	if p.ID == snap.SelfID {
		return p.Name + " (you)"
	}
	return p.Name
}

func markers(snap gameview.Snapshot, id protocol.PlayerID) string {
	var m string
	if snap.Dealer == id {
		m += "(D)"
	}
	if snap.Highlight == id {
		m += "→"
	}
	return m
}

func cardLine(cards []protocol.Card) string {
	if len(cards) == 0 {
		return "—"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
