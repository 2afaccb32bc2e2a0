package visibility

import (
	"math"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
)

// passFunc decides whether a ray may cross b. frac is where the ray meets
// the edge, 0..1 from its lower-coordinate end.
type passFunc func(b *geometry.Boundary, frac float64) bool

const (
	// originNudge moves the start off any grid line it sits on exactly.
	originNudge   = 1e-6
	cornerEpsilon = 1e-9
	zeroLength    = 1e-9
	stepSlack     = 10
)

// castRay walks every cell the segment from -> to passes through, asking
// pass about each boundary crossed. Non-Floor cells stop the ray unless
// they are the target cell.
func (e *Engine) castRay(from, to geometry.Vec2, pass passFunc) bool {
	target := to.Cell()
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < zeroLength {
		return true
	}

	sx := from.X + dx/length*originNudge
	sy := from.Y + dy/length*originNudge
	cx, cy := floorInt(sx), floorInt(sy)
	if cx == target.X && cy == target.Y {
		return true
	}
	if e.graph.CellType(cx, cy) != geometry.CellFloor {
		return false
	}

	stepX, stepY := sign(dx), sign(dy)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)
	if dx != 0 {
		tDeltaX = 1.0 / math.Abs(dx)
	}
	if dy != 0 {
		tDeltaY = 1.0 / math.Abs(dy)
	}

	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	if stepX > 0 {
		tMaxX = (float64(cx+1) - sx) / dx
	} else if stepX < 0 {
		tMaxX = (sx - float64(cx)) / -dx
	}
	if stepY > 0 {
		tMaxY = (float64(cy+1) - sy) / dy
	} else if stepY < 0 {
		tMaxY = (sy - float64(cy)) / -dy
	}

	maxSteps := abs(target.X-cx) + abs(target.Y-cy) + stepSlack
	for step := 0; step < maxSteps; step++ {
		switch {
		case math.Abs(tMaxX-tMaxY) < cornerEpsilon:
			if !e.crossCorner(cx, cy, stepX, stepY, pass) {
				return false
			}
			cx += stepX
			cy += stepY
			tMaxX += tDeltaX
			tMaxY += tDeltaY
		case tMaxX < tMaxY:
			b := e.graph.BoundaryBetween(cx, cy, cx+stepX, cy)
			if b == nil || !pass(b, clamp01(sy+tMaxX*dy-float64(cy))) {
				return false
			}
			cx += stepX
			tMaxX += tDeltaX
		default:
			b := e.graph.BoundaryBetween(cx, cy, cx, cy+stepY)
			if b == nil || !pass(b, clamp01(sx+tMaxY*dx-float64(cx))) {
				return false
			}
			cy += stepY
			tMaxY += tDeltaY
		}

		if cx == target.X && cy == target.Y {
			return true
		}
		if e.graph.CellType(cx, cy) != geometry.CellFloor {
			return false
		}
	}
	return false
}

// crossCorner handles a ray passing exactly through a grid corner. Both
// orthogonal routes around the corner must be clear, and both cells beside
// the corner must be Floor. Crossings land on the very end of each edge.
func (e *Engine) crossCorner(cx, cy, stepX, stepY int, pass passFunc) bool {
	// Fraction of the corner along an edge leaving (cx,cy) in x and in y.
	fracY := 0.0
	if stepY > 0 {
		fracY = 1
	}
	fracX := 0.0
	if stepX > 0 {
		fracX = 1
	}

	xFirst := geometry.Point{X: cx + stepX, Y: cy}
	yFirst := geometry.Point{X: cx, Y: cy + stepY}
	diag := geometry.Point{X: cx + stepX, Y: cy + stepY}

	for _, mid := range [2]geometry.Point{xFirst, yFirst} {
		if e.graph.CellType(mid.X, mid.Y) != geometry.CellFloor {
			return false
		}
	}

	edges := [4]struct {
		a, b geometry.Point
		frac float64
	}{
		{geometry.Point{X: cx, Y: cy}, xFirst, fracY},
		{xFirst, diag, 1 - fracX},
		{geometry.Point{X: cx, Y: cy}, yFirst, fracX},
		{yFirst, diag, 1 - fracY},
	}
	for _, edge := range edges {
		b := e.graph.Boundary(edge.a, edge.b)
		if b == nil || !pass(b, edge.frac) {
			return false
		}
	}
	return true
}

func floorInt(f float64) int {
	return int(math.Floor(f))
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
