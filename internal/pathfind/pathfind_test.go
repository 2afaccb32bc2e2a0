package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/grid"
)

func openMap(w, h int) geometry.MapDefinition {
	def := geometry.MapDefinition{Width: w, Height: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			def.Cells = append(def.Cells, geometry.CellDefinition{X: x, Y: y, Type: geometry.CellFloor})
		}
	}
	return def
}

func createPathfinder(def geometry.MapDefinition) (*Pathfinder, geometry.DoorMap) {
	doors := geometry.NewDoorMap(def.Doors)
	return New(grid.New(geometry.NewGraph(def)), doors), doors
}

func pt(x, y int) geometry.Point { return geometry.Point{X: x, Y: y} }

// assertLegalPath checks every step is adjacent and traversable.
func assertLegalPath(t *testing.T, pf *Pathfinder, start, end geometry.Point, path []geometry.Point, allowClosed bool) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, end, path[len(path)-1])
	prev := start
	for _, p := range path {
		assert.True(t, prev.Adjacent(p), "%v -> %v", prev, p)
		assert.True(t, pf.grid.CanMove(prev.X, prev.Y, p.X, p.Y, pf.doors, allowClosed), "%v -> %v", prev, p)
		prev = p
	}
}

func TestFindPath_ClosedDoorPolicy(t *testing.T) {
	// Arrange: two cells joined by a closed vertical door.
	def := openMap(2, 1)
	def.Doors = []geometry.Door{{
		ID:          "d1",
		Segment:     []geometry.Point{pt(0, 0), pt(1, 0)},
		Orientation: geometry.Vertical,
		State:       geometry.DoorClosed,
	}}
	pf, doors := createPathfinder(def)

	// Act + Assert
	assert.Nil(t, pf.FindPath(pt(0, 0), pt(1, 0), false))
	assert.Equal(t, []geometry.Point{pt(1, 0)}, pf.FindPath(pt(0, 0), pt(1, 0), true))

	d := doors["d1"]
	d.State = geometry.DoorLocked
	doors["d1"] = d
	assert.Nil(t, pf.FindPath(pt(0, 0), pt(1, 0), true))

	d.State = geometry.DoorOpen
	doors["d1"] = d
	assert.Equal(t, []geometry.Point{pt(1, 0)}, pf.FindPath(pt(0, 0), pt(1, 0), false))
}

func TestFindPath_SameCellIsEmpty(t *testing.T) {
	pf, _ := createPathfinder(openMap(3, 3))

	path := pf.FindPath(pt(1, 1), pt(1, 1), false)

	require.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindPath_InvalidEndIsNil(t *testing.T) {
	def := openMap(3, 1)
	def.Cells[2].Type = geometry.CellWall
	pf, _ := createPathfinder(def)

	assert.Nil(t, pf.FindPath(pt(0, 0), pt(2, 0), false), "wall cell")
	assert.Nil(t, pf.FindPath(pt(0, 0), pt(5, 0), false), "out of bounds")
	assert.Nil(t, pf.FindPath(pt(0, 0), pt(-1, -1), true), "negative")
	assert.Nil(t, pf.FindPath(pt(2, 0), pt(2, 0), false), "same invalid cell")
	assert.Nil(t, pf.FindPath(pt(9, 9), pt(1, 0), false), "start off the map")
}

func TestFindPath_UnreachableAcrossWall(t *testing.T) {
	def := openMap(3, 2)
	def.Walls = []geometry.WallSegment{
		{P1: pt(0, 0), P2: pt(1, 0)},
		{P1: pt(0, 1), P2: pt(1, 1)},
	}
	pf, _ := createPathfinder(def)

	assert.Nil(t, pf.FindPath(pt(0, 0), pt(2, 1), true))
	assert.NotNil(t, pf.FindPath(pt(1, 0), pt(2, 1), false))
}

func TestPathfinder_RefreshPicksUpBoundaryEdits(t *testing.T) {
	def := openMap(2, 1)
	def.Walls = []geometry.WallSegment{{P1: pt(0, 0), P2: pt(1, 0)}}
	gr := grid.New(geometry.NewGraph(def))
	pf := New(gr, nil)
	gr.Graph().Boundary(pt(0, 0), pt(1, 0)).Type = geometry.BoundaryOpen

	stale := pf.FindPath(pt(0, 0), pt(1, 0), false)
	pf.Refresh()
	fresh := pf.FindPath(pt(0, 0), pt(1, 0), false)

	assert.Nil(t, stale)
	assert.Equal(t, []geometry.Point{pt(1, 0)}, fresh)
}

func TestFindPath_ShortestAroundObstacle(t *testing.T) {
	// F F F F F
	// F W W W F
	// F F F F F
	def := openMap(5, 3)
	for x := 1; x <= 3; x++ {
		def.Cells[1*5+x].Type = geometry.CellWall
	}
	pf, _ := createPathfinder(def)
	start, end := pt(0, 1), pt(4, 1)

	path := pf.FindPath(start, end, false)

	assertLegalPath(t, pf, start, end, path, false)
	assert.Len(t, path, 6)
}

func TestFindPath_Deterministic(t *testing.T) {
	def := geometry.CorridorsAndRoomsMap(21, 15)
	for i := range def.Doors {
		def.Doors[i].State = geometry.DoorOpen
	}
	pf, _ := createPathfinder(def)
	start, end := pt(2, 2), pt(17, 12)

	first := pf.FindPath(start, end, false)
	assertLegalPath(t, pf, start, end, first, false)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, pf.FindPath(start, end, false))
	}
}

func TestFindPath_DirectionOrderPrefersSouthThenNorth(t *testing.T) {
	pf, _ := createPathfinder(openMap(3, 3))

	// Two shortest routes exist; south is expanded before east.
	path := pf.FindPath(pt(0, 0), pt(1, 1), false)

	assert.Equal(t, []geometry.Point{pt(0, 1), pt(1, 1)}, path)
}

func TestFindPath_ThroughRoomDoors(t *testing.T) {
	def := geometry.CorridorsAndRoomsMap(15, 11)
	pf, doors := createPathfinder(def)
	inside := pt(2, 2) // room-nw
	corridor := pt(0, 5)

	assert.Nil(t, pf.FindPath(corridor, inside, false))
	path := pf.FindPath(corridor, inside, true)
	assertLegalPath(t, pf, corridor, inside, path, true)

	d := doors["door-room-nw"]
	d.State = geometry.DoorOpen
	doors["door-room-nw"] = d
	assert.Equal(t, path, pf.FindPath(corridor, inside, false))
}
