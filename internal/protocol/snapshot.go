package protocol

import "github.com/Ko-stant/tactical-grid/internal/geometry"

type CellLite struct {
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Type     geometry.CellType `json:"type"`
	RoomID   string            `json:"roomId,omitempty"`
	RegionID int               `json:"regionId"`
}

// BoundaryLite is a non-open boundary between two cells, plus its corner
// segment for drawing. Regions holds the regions of A and B, -1 for a
// non-Floor or off-grid side.
type BoundaryLite struct {
	A       geometry.Point        `json:"a"`
	B       geometry.Point        `json:"b"`
	Type    geometry.BoundaryType `json:"type"`
	DoorID  string                `json:"doorId,omitempty"`
	From    geometry.Vec2         `json:"from"`
	To      geometry.Vec2         `json:"to"`
	Regions [2]int                `json:"regions"`
}

type Snapshot struct {
	MapID           string          `json:"mapId"`
	MapWidth        int             `json:"mapWidth"`
	MapHeight       int             `json:"mapHeight"`
	RegionsCount    int             `json:"regionsCount"`
	Cells           []CellLite      `json:"cells"`
	Boundaries      []BoundaryLite  `json:"boundaries"`
	Doors           []geometry.Door `json:"doors"`
	OccupantRadius  float64         `json:"occupantRadius"`
	LastSequence    uint64          `json:"lastSeq"`
	ProtocolVersion string          `json:"protocolVersion"`
}
