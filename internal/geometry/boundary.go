package geometry

// BoundaryID indexes a Boundary in its Graph's arena.
type BoundaryID int32

const NoBoundary BoundaryID = -1

// Boundary is the single shared record for the edge between two
// Manhattan-adjacent cells. (X1,Y1) always sorts before (X2,Y2).
type Boundary struct {
	X1     int
	Y1     int
	X2     int
	Y2     int
	Type   BoundaryType
	DoorID string
}

func (b *Boundary) Cells() (Point, Point) {
	return Point{X: b.X1, Y: b.Y1}, Point{X: b.X2, Y: b.Y2}
}

func (b *Boundary) IsDoor() bool {
	return b.DoorID != ""
}

// Orientation of the edge line: cells side by side share a vertical edge.
func (b *Boundary) Orientation() Orientation {
	if b.X1 != b.X2 {
		return Vertical
	}
	return Horizontal
}

// Touches reports whether p is one of the two cells on either side of b.
func (b *Boundary) Touches(p Point) bool {
	return (p.X == b.X1 && p.Y == b.Y1) || (p.X == b.X2 && p.Y == b.Y2)
}

// VisualSegment returns the corner points of the edge line.
func (b *Boundary) VisualSegment() (Vec2, Vec2) {
	if b.X1 == b.X2 {
		y := float64(max(b.Y1, b.Y2))
		x := float64(b.X1)
		return Vec2{X: x, Y: y}, Vec2{X: x + 1, Y: y}
	}
	x := float64(max(b.X1, b.X2))
	y := float64(b.Y1)
	return Vec2{X: x, Y: y}, Vec2{X: x, Y: y + 1}
}
