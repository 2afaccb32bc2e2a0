// Package grid answers single-step movement legality on a topology graph.
package grid

import "github.com/Ko-stant/tactical-grid/internal/geometry"

type Grid struct {
	graph *geometry.Graph
}

func New(g *geometry.Graph) *Grid {
	return &Grid{graph: g}
}

func (gr *Grid) Graph() *geometry.Graph { return gr.graph }
func (gr *Grid) Width() int             { return gr.graph.Width() }
func (gr *Grid) Height() int            { return gr.graph.Height() }

// IsWalkable reports whether (x,y) is an in-bounds Floor cell.
func (gr *Grid) IsWalkable(x, y int) bool {
	return gr.graph.CellType(x, y) == geometry.CellFloor
}

// CanMove reports whether a unit may step from one cell to a Manhattan
// neighbor. Door edges follow DoorAllowsMovement; a door missing from the
// snapshot falls back to the boundary's derived classification.
func (gr *Grid) CanMove(fromX, fromY, toX, toY int, doors geometry.DoorLookup, allowClosedDoors bool) bool {
	if !gr.IsWalkable(fromX, fromY) || !gr.IsWalkable(toX, toY) {
		return false
	}
	b := gr.graph.BoundaryBetween(fromX, fromY, toX, toY)
	if b == nil {
		return false
	}
	return BoundaryAllowsMovement(b, doors, allowClosedDoors)
}

// BoundaryAllowsMovement applies the movement rules to a single edge.
func BoundaryAllowsMovement(b *geometry.Boundary, doors geometry.DoorLookup, allowClosedDoors bool) bool {
	if b.IsDoor() && doors != nil {
		if door, ok := doors.Door(b.DoorID); ok {
			return DoorAllowsMovement(door, allowClosedDoors)
		}
	}
	return b.Type == geometry.BoundaryOpen
}

// DoorAllowsMovement is the door traversal policy. Without allowClosedDoors
// only Open and Destroyed doors pass; with it every state except Locked
// passes, so a unit can path up to a door that will open on approach.
func DoorAllowsMovement(door geometry.Door, allowClosedDoors bool) bool {
	if allowClosedDoors {
		return door.State != geometry.DoorLocked
	}
	return door.State == geometry.DoorOpen || door.State == geometry.DoorDestroyed
}
