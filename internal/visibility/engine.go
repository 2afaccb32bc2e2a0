// Package visibility answers line-of-sight and line-of-fire questions over a
// geometry.Graph by casting rays through the grid.
package visibility

import (
	"math"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
)

// DefaultOccupantRadius is how far the side rays sit from the center ray.
const DefaultOccupantRadius = 0.3

// Door struts occupy the outer thirds of a door edge.
const (
	strutLow  = 1.0 / 3.0
	strutHigh = 2.0 / 3.0
)

type Engine struct {
	graph  *geometry.Graph
	doors  geometry.DoorLookup
	radius float64
}

type Option func(*Engine)

// WithOccupantRadius sets the half-width of the fat ray. Negative values are
// ignored.
func WithOccupantRadius(r float64) Option {
	return func(e *Engine) {
		if r >= 0 {
			e.radius = r
		}
	}
}

// New returns an engine reading door states from doors on every query. A nil
// lookup behaves as if no door were known.
func New(g *geometry.Graph, doors geometry.DoorLookup, opts ...Option) *Engine {
	e := &Engine{graph: g, doors: doors, radius: DefaultOccupantRadius}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Radius() float64 { return e.radius }

// HasLineOfSight reports whether any of the three parallel rays between a
// and b reaches b's cell.
func (e *Engine) HasLineOfSight(a, b geometry.Vec2) bool {
	rays, ok := e.fatRay(a, b)
	if !ok {
		return true
	}
	for _, r := range rays {
		if e.castRay(r[0], r[1], e.sightPasses) {
			return true
		}
	}
	return false
}

// HasLineOfFire reports whether all three parallel rays between a and b reach
// b's cell. Points in the same cell always have line of fire.
func (e *Engine) HasLineOfFire(a, b geometry.Vec2) bool {
	if a.Cell() == b.Cell() {
		return true
	}
	rays, ok := e.fatRay(a, b)
	if !ok {
		return true
	}
	for _, r := range rays {
		if !e.castRay(r[0], r[1], e.firePasses) {
			return false
		}
	}
	return true
}

// fatRay returns the center ray plus the two rays offset perpendicular to it
// by the occupant radius. ok is false for a zero-length segment.
func (e *Engine) fatRay(a, b geometry.Vec2) (rays [3][2]geometry.Vec2, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < zeroLength {
		return rays, false
	}
	px, py := -dy/length*e.radius, dx/length*e.radius
	rays[0] = [2]geometry.Vec2{a, b}
	rays[1] = [2]geometry.Vec2{{X: a.X + px, Y: a.Y + py}, {X: b.X + px, Y: b.Y + py}}
	rays[2] = [2]geometry.Vec2{{X: a.X - px, Y: a.Y - py}, {X: b.X - px, Y: b.Y - py}}
	return rays, true
}

// sightPasses lets sight through open or destroyed doors, and through doors
// already swinging open.
func (e *Engine) sightPasses(b *geometry.Boundary, frac float64) bool {
	if !b.IsDoor() {
		return b.Type != geometry.BoundaryWall
	}
	if onStrut(frac) {
		return false
	}
	door, ok := e.door(b.DoorID)
	if !ok {
		return b.Type == geometry.BoundaryOpen
	}
	return doorOpen(door.State) || door.TargetState == geometry.DoorOpen
}

// firePasses only lets shots through doors that are fully open or destroyed.
func (e *Engine) firePasses(b *geometry.Boundary, frac float64) bool {
	if !b.IsDoor() {
		return b.Type != geometry.BoundaryWall
	}
	if onStrut(frac) {
		return false
	}
	door, ok := e.door(b.DoorID)
	if !ok {
		return b.Type == geometry.BoundaryOpen
	}
	return doorOpen(door.State)
}

func (e *Engine) door(id string) (geometry.Door, bool) {
	if e.doors == nil {
		return geometry.Door{}, false
	}
	return e.doors.Door(id)
}

func doorOpen(s geometry.DoorState) bool {
	return s == geometry.DoorOpen || s == geometry.DoorDestroyed
}

func onStrut(frac float64) bool {
	return frac < strutLow || frac > strutHigh
}
