package geometry

type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionOffsets = [4]Point{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Offset returns the step from a cell to its neighbor in direction d.
func (d Direction) Offset() Point {
	return directionOffsets[d]
}

type GraphCell struct {
	X      int
	Y      int
	Type   CellType
	RoomID string
	Edges  [4]BoundaryID
}

// Graph is the topology of a map: cells plus one canonical Boundary per
// edge. Cells store arena indices, so a boundary changed through one cell is
// seen from its neighbor.
type Graph struct {
	width      int
	height     int
	cells      []GraphCell
	boundaries []Boundary
	index      map[int]BoundaryID
	logger     Logger
}

type GraphOption func(*Graph)

// WithLogger reports skipped map entries during construction.
func WithLogger(l Logger) GraphOption {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGraph builds the topology for def. Malformed walls, doors and boundary
// definitions are skipped, never fatal.
func NewGraph(def MapDefinition, opts ...GraphOption) *Graph {
	w := max(def.Width, 0)
	h := max(def.Height, 0)
	g := &Graph{
		width:      w,
		height:     h,
		cells:      make([]GraphCell, w*h),
		boundaries: make([]Boundary, 0, 2*w*h+w+h),
		index:      make(map[int]BoundaryID, 2*w*h+w+h),
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.cells[y*w+x] = GraphCell{X: x, Y: y, Type: CellVoid}
		}
	}

	for _, cd := range def.Cells {
		if !g.InBounds(cd.X, cd.Y) {
			continue
		}
		c := &g.cells[cd.Y*w+cd.X]
		c.Type = cd.Type
		c.RoomID = cd.RoomID
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := &g.cells[y*w+x]
			for dir, off := range directionOffsets {
				nx, ny := x+off.X, y+off.Y
				id := g.getOrCreate(Point{X: x, Y: y}, Point{X: nx, Y: ny})
				c.Edges[dir] = id
				if !g.InBounds(nx, ny) {
					g.boundaries[id].Type = BoundaryWall
				}
			}
		}
	}

	// Legacy flags only ever add walls; one closed side closes the edge.
	for _, cd := range def.Cells {
		if cd.Walls == nil || !g.InBounds(cd.X, cd.Y) {
			continue
		}
		flags := [4]bool{North: cd.Walls.N, East: cd.Walls.E, South: cd.Walls.S, West: cd.Walls.W}
		c := g.cells[cd.Y*w+cd.X]
		for dir, closed := range flags {
			if closed {
				g.boundaries[c.Edges[dir]].Type = BoundaryWall
			}
		}
	}

	for _, wall := range def.Walls {
		id, ok := g.lookup(wall.P1, wall.P2)
		if !ok {
			g.logger.Printf("skipping wall %v--%v: cells are not adjacent on this map", wall.P1, wall.P2)
			continue
		}
		g.boundaries[id].Type = BoundaryWall
	}

	for _, door := range def.Doors {
		if len(door.Segment) != 2 {
			g.logger.Printf("skipping door %q: segment has %d cells, want 2", door.ID, len(door.Segment))
			continue
		}
		id, ok := g.interiorLookup(door.Segment[0], door.Segment[1])
		if !ok {
			g.logger.Printf("skipping door %q: %v--%v is not an edge between two cells of this map", door.ID, door.Segment[0], door.Segment[1])
			continue
		}
		g.boundaries[id].Type = BoundaryDoor
		g.boundaries[id].DoorID = door.ID
	}

	for _, bd := range def.Boundaries {
		id, ok := g.interiorLookup(Point{X: bd.X1, Y: bd.Y1}, Point{X: bd.X2, Y: bd.Y2})
		if !ok {
			g.logger.Printf("skipping boundary (%d,%d)--(%d,%d): not an edge between two cells of this map", bd.X1, bd.Y1, bd.X2, bd.Y2)
			continue
		}
		g.boundaries[id].Type = bd.Type
		if bd.DoorID != "" {
			g.boundaries[id].DoorID = bd.DoorID
		}
	}

	return g
}

func (g *Graph) Width() int  { return g.width }
func (g *Graph) Height() int { return g.height }

func (g *Graph) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Graph) Cell(x, y int) (GraphCell, bool) {
	if !g.InBounds(x, y) {
		return GraphCell{}, false
	}
	return g.cells[y*g.width+x], true
}

// CellType returns Void for coordinates outside the map.
func (g *Graph) CellType(x, y int) CellType {
	if !g.InBounds(x, y) {
		return CellVoid
	}
	return g.cells[y*g.width+x].Type
}

// Boundary returns the canonical boundary between a and b, or nil when the
// two cells are not adjacent or the edge is not part of this map.
func (g *Graph) Boundary(a, b Point) *Boundary {
	id, ok := g.lookup(a, b)
	if !ok {
		return nil
	}
	return &g.boundaries[id]
}

func (g *Graph) BoundaryBetween(x1, y1, x2, y2 int) *Boundary {
	return g.Boundary(Point{X: x1, Y: y1}, Point{X: x2, Y: y2})
}

func (g *Graph) BoundaryByID(id BoundaryID) *Boundary {
	if id < 0 || int(id) >= len(g.boundaries) {
		return nil
	}
	return &g.boundaries[id]
}

// Edge returns the boundary on side dir of cell (x,y).
func (g *Graph) Edge(x, y int, dir Direction) *Boundary {
	c, ok := g.Cell(x, y)
	if !ok || dir < North || dir > West {
		return nil
	}
	return &g.boundaries[c.Edges[dir]]
}

// AllBoundaries returns every boundary in construction order.
func (g *Graph) AllBoundaries() []*Boundary {
	out := make([]*Boundary, len(g.boundaries))
	for i := range g.boundaries {
		out[i] = &g.boundaries[i]
	}
	return out
}

// SyncDoor pushes a door transition into the boundary classification: Open
// while the door is open, destroyed or opening, Door otherwise. It returns
// false when the door's segment is not an edge between two cells of this map.
func (g *Graph) SyncDoor(door Door) bool {
	if len(door.Segment) != 2 {
		return false
	}
	id, ok := g.interiorLookup(door.Segment[0], door.Segment[1])
	if !ok {
		return false
	}
	b := &g.boundaries[id]
	b.DoorID = door.ID
	if door.State == DoorOpen || door.State == DoorDestroyed || door.TargetState == DoorOpen {
		b.Type = BoundaryOpen
	} else {
		b.Type = BoundaryDoor
	}
	return true
}

// CellWalls derives the legacy four-flag view of cell (x,y). Doors count as
// walls; out-of-bounds cells report all sides closed.
func (g *Graph) CellWalls(x, y int) CellWalls {
	c, ok := g.Cell(x, y)
	if !ok {
		return CellWalls{N: true, E: true, S: true, W: true}
	}
	closed := func(dir Direction) bool {
		return g.boundaries[c.Edges[dir]].Type != BoundaryOpen
	}
	return CellWalls{N: closed(North), E: closed(East), S: closed(South), W: closed(West)}
}

func (g *Graph) getOrCreate(a, b Point) BoundaryID {
	key, ok := g.edgeKey(a, b)
	if !ok {
		return NoBoundary
	}
	if id, ok := g.index[key]; ok {
		return id
	}
	if g.paddedIndex(b) < g.paddedIndex(a) {
		a, b = b, a
	}
	id := BoundaryID(len(g.boundaries))
	g.boundaries = append(g.boundaries, Boundary{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Type: BoundaryOpen})
	g.index[key] = id
	return id
}

// interiorLookup is lookup restricted to edges with a cell on both sides.
// Edges to the off-grid ring stay Wall.
func (g *Graph) interiorLookup(a, b Point) (BoundaryID, bool) {
	if !g.InBounds(a.X, a.Y) || !g.InBounds(b.X, b.Y) {
		return NoBoundary, false
	}
	return g.lookup(a, b)
}

func (g *Graph) lookup(a, b Point) (BoundaryID, bool) {
	key, ok := g.edgeKey(a, b)
	if !ok {
		return NoBoundary, false
	}
	id, ok := g.index[key]
	return id, ok
}

// edgeKey maps an unordered adjacent pair to one integer: the lower padded
// cell index times two, plus one for a vertical neighbor pair. The padding
// ring gives off-grid neighbors of edge cells a key of their own.
func (g *Graph) edgeKey(a, b Point) (int, bool) {
	if !a.Adjacent(b) || !g.inPadded(a) || !g.inPadded(b) {
		return 0, false
	}
	ia, ib := g.paddedIndex(a), g.paddedIndex(b)
	lo := min(ia, ib)
	axis := 0
	if a.X == b.X {
		axis = 1
	}
	return lo*2 + axis, true
}

func (g *Graph) inPadded(p Point) bool {
	return p.X >= -1 && p.Y >= -1 && p.X <= g.width && p.Y <= g.height
}

func (g *Graph) paddedIndex(p Point) int {
	return (p.Y+1)*(g.width+2) + (p.X + 1)
}
