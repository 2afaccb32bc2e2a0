package visibility

import (
	"math"
	"strconv"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/zyedidia/generic/mapset"
)

// Per-cell fog-of-war bits.
const (
	VisibleBit    byte = 1 << 0
	DiscoveredBit byte = 1 << 1
)

// CellKey is the "x,y" form used for visible-cell sets.
func CellKey(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

// ComputeVisibleCells returns the keys of every cell within maxRange of
// origin that origin can see, opaque cells included. A maxRange that is not
// positive, or larger than the map, means the whole map.
func (e *Engine) ComputeVisibleCells(origin geometry.Vec2, maxRange float64) mapset.Set[string] {
	visible := mapset.New[string]()
	e.scan(origin, maxRange, e.graph.Width(), e.graph.Height(), func(x, y int) {
		visible.Put(CellKey(x, y))
	})
	return visible
}

// UpdateVisibleCells marks every cell origin can see as visible and
// discovered in bits, a width*height row-major array. Bits of other cells
// are left alone; call ClearVisible first to start a fresh frame.
func (e *Engine) UpdateVisibleCells(origin geometry.Vec2, bits []byte, width, height int, maxRange float64) {
	w := min(width, e.graph.Width())
	h := min(height, e.graph.Height())
	e.scan(origin, maxRange, w, h, func(x, y int) {
		if i := y*width + x; i < len(bits) {
			bits[i] |= VisibleBit | DiscoveredBit
		}
	})
}

// scan visits every cell in the range box whose center is within maxRange
// of origin and in line of sight. Opaque cells are visited when a ray
// reaches them: their faces are seen, what lies behind them is not.
func (e *Engine) scan(origin geometry.Vec2, maxRange float64, width, height int, visit func(x, y int)) {
	if width <= 0 || height <= 0 {
		return
	}
	unbounded := float64(e.graph.Width() + e.graph.Height())
	if !(maxRange > 0) || maxRange > unbounded {
		maxRange = unbounded
	}
	reach := int(math.Ceil(maxRange))
	oc := origin.Cell()
	minX, maxX := max(0, oc.X-reach), min(width-1, oc.X+reach)
	minY, maxY := max(0, oc.Y-reach), min(height-1, oc.Y+reach)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			center := geometry.CellCenter(geometry.Point{X: x, Y: y})
			if math.Hypot(center.X-origin.X, center.Y-origin.Y) > maxRange {
				continue
			}
			if e.HasLineOfSight(origin, center) {
				visit(x, y)
			}
		}
	}
}

// ClearVisible drops the visible bit from every cell, keeping discovery.
func ClearVisible(bits []byte) {
	for i := range bits {
		bits[i] &^= VisibleBit
	}
}

func IsVisible(bits []byte, width, x, y int) bool {
	return cellBit(bits, width, x, y, VisibleBit)
}

func IsDiscovered(bits []byte, width, x, y int) bool {
	return cellBit(bits, width, x, y, DiscoveredBit)
}

func cellBit(bits []byte, width, x, y int, bit byte) bool {
	if x < 0 || y < 0 || x >= width {
		return false
	}
	i := y*width + x
	return i < len(bits) && bits[i]&bit != 0
}
