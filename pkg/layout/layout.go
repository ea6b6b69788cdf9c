// Package layout places player seats around an elliptical table. It is a
// collaborator of the view, not part of the reconstruction core: it consumes
// the ordered seating and a container size and produces coordinates, with
// the client's own seat anchored at a fixed reference angle.
package layout

import (
	"math"

	"github.com/cardroom/tableview/pkg/protocol"
)

// selfAngle anchors the invoking client's own seat at the bottom of the
// table.
const selfAngle = math.Pi / 2

// Seat is one placed player.
type Seat struct {
	ID    protocol.PlayerID `json:"id"`
	X     int               `json:"x"`
	Y     int               `json:"y"`
	Angle float64           `json:"angle"`
}

// Positions places the ordered identities around an ellipse fitted to the
// container. Seating order is preserved going clockwise from self; when
// self is absent from the order the first seat takes the anchor.
func Positions(order []protocol.PlayerID, self protocol.PlayerID, width, height int) []Seat {
	n := len(order)
	if n == 0 {
		return nil
	}

	selfIdx := 0
	for i, id := range order {
		if id == self {
			selfIdx = i
			break
		}
	}

	cx, cy := float64(width)/2, float64(height)/2
	rx, ry := cx*0.85, cy*0.75

	seats := make([]Seat, n)
	for i, id := range order {
		offset := float64((i-selfIdx+n)%n) / float64(n)
		angle := selfAngle + offset*2*math.Pi
		seats[i] = Seat{
			ID:    id,
			X:     int(math.Round(cx + rx*math.Cos(angle))),
			Y:     int(math.Round(cy + ry*math.Sin(angle))),
			Angle: angle,
		}
	}
	return seats
}
