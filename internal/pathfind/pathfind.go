// Package pathfind finds shortest 4-connected routes over a movement grid.
package pathfind

import (
	"slices"

	"github.com/zyedidia/generic/queue"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/grid"
)

// Expansion order is part of the result: replays depend on it.
var searchOrder = [4]geometry.Direction{geometry.South, geometry.North, geometry.East, geometry.West}

type Pathfinder struct {
	grid    *grid.Grid
	doors   geometry.DoorLookup
	regions geometry.RegionMap
}

// New reads door state through doors on every search, so callers may keep
// mutating the snapshot between calls. The region map is built once: door
// transitions (SyncDoor) need nothing more, but any other edit to a
// boundary's Type or a cell's Type must be followed by Refresh.
func New(gr *grid.Grid, doors geometry.DoorLookup) *Pathfinder {
	pf := &Pathfinder{grid: gr, doors: doors}
	pf.Refresh()
	return pf
}

// Refresh rebuilds the region map from the current graph.
func (pf *Pathfinder) Refresh() {
	pf.regions = geometry.BuildRegionMap(pf.grid.Graph())
}

// FindPath returns the cells from start (exclusive) to end (inclusive), an
// empty slice when start == end, or nil when end is not a Floor cell or
// cannot be reached under the door policy.
func (pf *Pathfinder) FindPath(start, end geometry.Point, allowClosedDoors bool) []geometry.Point {
	g := pf.grid.Graph()
	if !pf.grid.IsWalkable(end.X, end.Y) {
		return nil
	}
	if start == end {
		return []geometry.Point{}
	}
	if !pf.grid.IsWalkable(start.X, start.Y) {
		return nil
	}
	if pf.regions.RegionAt(g, start.X, start.Y) != pf.regions.RegionAt(g, end.X, end.Y) {
		return nil
	}

	w := g.Width()
	parent := make([]int32, w*g.Height())
	for i := range parent {
		parent[i] = -1
	}
	startIdx := start.Y*w + start.X
	endIdx := end.Y*w + end.X
	parent[startIdx] = int32(startIdx)

	frontier := queue.New[geometry.Point]()
	frontier.Enqueue(start)
	for !frontier.Empty() {
		cur := frontier.Dequeue()
		if cur == end {
			break
		}
		for _, dir := range searchOrder {
			off := dir.Offset()
			next := geometry.Point{X: cur.X + off.X, Y: cur.Y + off.Y}
			if !g.InBounds(next.X, next.Y) {
				continue
			}
			nidx := next.Y*w + next.X
			if parent[nidx] != -1 {
				continue
			}
			if !pf.grid.CanMove(cur.X, cur.Y, next.X, next.Y, pf.doors, allowClosedDoors) {
				continue
			}
			parent[nidx] = int32(cur.Y*w + cur.X)
			frontier.Enqueue(next)
		}
	}

	if parent[endIdx] == -1 {
		return nil
	}

	var path []geometry.Point
	for idx := endIdx; idx != startIdx; idx = int(parent[idx]) {
		path = append(path, geometry.Point{X: idx % w, Y: idx / w})
	}
	slices.Reverse(path)
	return path
}
