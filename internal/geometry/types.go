package geometry

import (
	"fmt"
	"math"
)

// Point addresses a single grid cell.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Adjacent reports whether p and q share an edge.
func (p Point) Adjacent(q Point) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// Vec2 is a continuous position in grid units; cell (x,y) spans [x,x+1) x [y,y+1).
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Cell returns the cell containing v.
func (v Vec2) Cell() Point {
	return Point{X: floorInt(v.X), Y: floorInt(v.Y)}
}

// CellCenter returns the continuous center of cell p.
func CellCenter(p Point) Vec2 {
	return Vec2{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

type CellType string

const (
	CellVoid  CellType = "Void"
	CellFloor CellType = "Floor"
	CellWall  CellType = "Wall"
)

type BoundaryType string

const (
	BoundaryOpen BoundaryType = "Open"
	BoundaryWall BoundaryType = "Wall"
	BoundaryDoor BoundaryType = "Door"
)

type Orientation string

const (
	Vertical   Orientation = "Vertical"
	Horizontal Orientation = "Horizontal"
)

type DoorState string

const (
	DoorClosed    DoorState = "Closed"
	DoorOpen      DoorState = "Open"
	DoorLocked    DoorState = "Locked"
	DoorDestroyed DoorState = "Destroyed"
)

// Valid reports whether s is one of the four door states.
func (s DoorState) Valid() bool {
	switch s {
	case DoorClosed, DoorOpen, DoorLocked, DoorDestroyed:
		return true
	}
	return false
}

// Door is the externally owned door record. TargetState and OpenTimer are set
// while the door is animating between Open and Closed.
type Door struct {
	ID           string      `json:"id" yaml:"id"`
	Segment      []Point     `json:"segment" yaml:"segment"`
	Orientation  Orientation `json:"orientation" yaml:"orientation"`
	State        DoorState   `json:"state" yaml:"state"`
	TargetState  DoorState   `json:"targetState,omitempty" yaml:"targetState,omitempty"`
	OpenTimer    float64     `json:"openTimer,omitempty" yaml:"openTimer,omitempty"`
	OpenDuration float64     `json:"openDuration,omitempty" yaml:"openDuration,omitempty"`
	HP           int         `json:"hp,omitempty" yaml:"hp,omitempty"`
	MaxHP        int         `json:"maxHp,omitempty" yaml:"maxHp,omitempty"`
}

func (d Door) IsOpening() bool {
	return d.TargetState == DoorOpen && d.State != DoorOpen && d.State != DoorDestroyed
}

func (d Door) IsClosing() bool {
	return d.TargetState == DoorClosed && d.State == DoorOpen
}

// DoorLookup is a read-only door-state snapshot keyed by door id.
type DoorLookup interface {
	Door(id string) (Door, bool)
}

// DoorMap is the plain map implementation of DoorLookup.
type DoorMap map[string]Door

func NewDoorMap(doors []Door) DoorMap {
	m := make(DoorMap, len(doors))
	for _, d := range doors {
		m[d.ID] = d
	}
	return m
}

func (m DoorMap) Door(id string) (Door, bool) {
	d, ok := m[id]
	return d, ok
}

// CellWalls is the legacy per-cell wall representation, one flag per side.
type CellWalls struct {
	N bool `json:"n" yaml:"n"`
	E bool `json:"e" yaml:"e"`
	S bool `json:"s" yaml:"s"`
	W bool `json:"w" yaml:"w"`
}

type CellDefinition struct {
	X      int        `json:"x" yaml:"x"`
	Y      int        `json:"y" yaml:"y"`
	Type   CellType   `json:"type" yaml:"type"`
	RoomID string     `json:"roomId,omitempty" yaml:"roomId,omitempty"`
	Walls  *CellWalls `json:"walls,omitempty" yaml:"walls,omitempty"`
}

// WallSegment names the two adjacent cells a wall separates.
type WallSegment struct {
	P1 Point `json:"p1" yaml:"p1"`
	P2 Point `json:"p2" yaml:"p2"`
}

type BoundaryDefinition struct {
	X1     int          `json:"x1" yaml:"x1"`
	Y1     int          `json:"y1" yaml:"y1"`
	X2     int          `json:"x2" yaml:"x2"`
	Y2     int          `json:"y2" yaml:"y2"`
	Type   BoundaryType `json:"type" yaml:"type"`
	DoorID string       `json:"doorId,omitempty" yaml:"doorId,omitempty"`
}

// MapDefinition is the map description produced by map generation.
type MapDefinition struct {
	Width      int                  `json:"width" yaml:"width"`
	Height     int                  `json:"height" yaml:"height"`
	Cells      []CellDefinition     `json:"cells" yaml:"cells"`
	Walls      []WallSegment        `json:"walls,omitempty" yaml:"walls,omitempty"`
	Boundaries []BoundaryDefinition `json:"boundaries,omitempty" yaml:"boundaries,omitempty"`
	Doors      []Door               `json:"doors,omitempty" yaml:"doors,omitempty"`
}

type RegionMap struct {
	TileRegionIDs []int
	RegionsCount  int
}

// Logger is satisfied by *log.Logger and *logrus.Logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

func floorInt(f float64) int {
	return int(math.Floor(f))
}
