package inspector

import (
	"fmt"
	"strconv"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/protocol"
)

//go:generate templ generate

const cellPx = 24

var cellFill = map[geometry.CellType]string{
	geometry.CellFloor: "#e8e2d0",
	geometry.CellWall:  "#555",
	geometry.CellVoid:  "#111",
}

var doorStroke = map[geometry.DoorState]string{
	geometry.DoorClosed:    "#8b5a2b",
	geometry.DoorLocked:    "#b22222",
	geometry.DoorOpen:      "#7fbf7f",
	geometry.DoorDestroyed: "#bbb",
}

func px(cells int) string {
	return strconv.Itoa(cells * cellPx)
}

func coord(v float64) string {
	return strconv.FormatFloat(v*cellPx, 'f', 0, 64)
}

func summary(snap protocol.Snapshot) string {
	return fmt.Sprintf("%dx%d, %d regions, occupant radius %.2f",
		snap.MapWidth, snap.MapHeight, snap.RegionsCount, snap.OccupantRadius)
}

func cellTitle(c protocol.CellLite) string {
	return fmt.Sprintf("%d,%d %s", c.X, c.Y, c.RoomID)
}

// boundaryStroke colors a door edge by its door's state. Plain edges are
// black.
func boundaryStroke(doors []geometry.Door, b protocol.BoundaryLite) string {
	if b.DoorID == "" {
		return "#000"
	}
	for _, d := range doors {
		if d.ID == b.DoorID {
			if stroke, ok := doorStroke[d.State]; ok {
				return stroke
			}
			break
		}
	}
	return doorStroke[geometry.DoorClosed]
}

func boundaryWidth(b protocol.BoundaryLite) string {
	if b.DoorID != "" {
		return "5"
	}
	return "3"
}
