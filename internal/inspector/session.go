// Package inspector serves a loaded map to developer tools: it answers sight,
// fire, path and visibility queries and lets clients flip door states.
package inspector

import (
	"io"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/grid"
	"github.com/Ko-stant/tactical-grid/internal/pathfind"
	"github.com/Ko-stant/tactical-grid/internal/protocol"
	"github.com/Ko-stant/tactical-grid/internal/visibility"
)

const ProtocolVersion = "v1"

// Session owns one map and its door-state snapshot. Door changes take the
// write lock; queries share the read lock, so every query sees a stable
// snapshot.
type Session struct {
	mu         sync.RWMutex
	mapID      string
	graph      *geometry.Graph
	pathfinder *pathfind.Pathfinder
	engine     *visibility.Engine
	regions    geometry.RegionMap
	doors      geometry.DoorMap
	doorOrder  []string
	logger     logrus.FieldLogger
}

type sessionConfig struct {
	mapID  string
	radius float64
	logger logrus.FieldLogger
}

type SessionOption func(*sessionConfig)

func WithMapID(id string) SessionOption {
	return func(c *sessionConfig) { c.mapID = id }
}

func WithOccupantRadius(r float64) SessionOption {
	return func(c *sessionConfig) { c.radius = r }
}

func WithLogger(l logrus.FieldLogger) SessionOption {
	return func(c *sessionConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewSession builds the topology for def and seeds the door snapshot from
// def.Doors.
func NewSession(def geometry.MapDefinition, opts ...SessionOption) *Session {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	cfg := sessionConfig{mapID: "map", radius: visibility.DefaultOccupantRadius, logger: quiet}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := geometry.NewGraph(def, geometry.WithLogger(cfg.logger))
	doors := geometry.NewDoorMap(def.Doors)
	order := make([]string, 0, len(def.Doors))
	seen := mapset.New[string]()
	for _, d := range def.Doors {
		if seen.Has(d.ID) || !g.SyncDoor(doors[d.ID]) {
			continue
		}
		seen.Put(d.ID)
		order = append(order, d.ID)
	}

	s := &Session{
		mapID:      cfg.mapID,
		graph:      g,
		pathfinder: pathfind.New(grid.New(g), doors),
		engine:     visibility.New(g, doors, visibility.WithOccupantRadius(cfg.radius)),
		regions:    geometry.BuildRegionMap(g),
		doors:      doors,
		doorOrder:  order,
		logger:     cfg.logger,
	}
	s.logger.WithFields(logrus.Fields{
		"map":     s.mapID,
		"width":   g.Width(),
		"height":  g.Height(),
		"doors":   len(order),
		"regions": s.regions.RegionsCount,
	}).Info("session ready")
	return s
}

func (s *Session) LineOfSight(a, b geometry.Vec2) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.HasLineOfSight(a, b)
}

func (s *Session) LineOfFire(a, b geometry.Vec2) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.HasLineOfFire(a, b)
}

func (s *Session) FindPath(start, end geometry.Point, allowClosedDoors bool) []geometry.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathfinder.FindPath(start, end, allowClosedDoors)
}

// VisibleCells returns the sorted keys of the cells visible from origin.
func (s *Session) VisibleCells(origin geometry.Vec2, maxRange float64) []string {
	s.mu.RLock()
	set := s.engine.ComputeVisibleCells(origin, maxRange)
	s.mu.RUnlock()

	keys := make([]string, 0, set.Size())
	set.Each(func(key string) {
		keys = append(keys, key)
	})
	slices.Sort(keys)
	return keys
}

// SetDoorState updates one door in the snapshot and pushes the change into
// the graph. An empty target clears any pending transition.
func (s *Session) SetDoorState(id string, state, target geometry.DoorState) (geometry.Door, error) {
	if !state.Valid() {
		return geometry.Door{}, newError(CodeInvalidDoorState, "invalid door state %q", state)
	}
	if target != "" && !target.Valid() {
		return geometry.Door{}, newError(CodeInvalidDoorState, "invalid target state %q", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	door, ok := s.doors[id]
	if !ok {
		return geometry.Door{}, newError(CodeUnknownDoor, "no door %q on map %s", id, s.mapID)
	}
	door.State = state
	door.TargetState = target
	s.doors[id] = door
	s.graph.SyncDoor(door)
	return door, nil
}

func (s *Session) Door(id string) (geometry.Door, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doors.Door(id)
}

// Snapshot describes the whole map for a freshly connected client.
func (s *Session) Snapshot(lastSeq uint64) protocol.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, h := s.graph.Width(), s.graph.Height()
	cells := make([]protocol.CellLite, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := s.graph.Cell(x, y)
			cells = append(cells, protocol.CellLite{
				X:        x,
				Y:        y,
				Type:     c.Type,
				RoomID:   c.RoomID,
				RegionID: s.regions.RegionAt(s.graph, x, y),
			})
		}
	}

	var boundaries []protocol.BoundaryLite
	for _, b := range s.graph.AllBoundaries() {
		if b.Type == geometry.BoundaryOpen && !b.IsDoor() {
			continue
		}
		a, c := b.Cells()
		from, to := b.VisualSegment()
		ra, rb := geometry.RegionsAcrossBoundary(s.regions, s.graph, b)
		boundaries = append(boundaries, protocol.BoundaryLite{
			A:       a,
			B:       c,
			Type:    b.Type,
			DoorID:  b.DoorID,
			From:    from,
			To:      to,
			Regions: [2]int{ra, rb},
		})
	}

	doors := make([]geometry.Door, 0, len(s.doorOrder))
	for _, id := range s.doorOrder {
		doors = append(doors, s.doors[id])
	}

	return protocol.Snapshot{
		MapID:           s.mapID,
		MapWidth:        w,
		MapHeight:       h,
		RegionsCount:    s.regions.RegionsCount,
		Cells:           cells,
		Boundaries:      boundaries,
		Doors:           doors,
		OccupantRadius:  s.engine.Radius(),
		LastSequence:    lastSeq,
		ProtocolVersion: ProtocolVersion,
	}
}
