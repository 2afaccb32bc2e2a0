package protocol

import "github.com/Ko-stant/tactical-grid/internal/geometry"

// Patch types sent to clients.
const (
	PatchLineResult       = "LineResult"
	PatchPathResult       = "PathResult"
	PatchVisibleCells     = "VisibleCells"
	PatchDoorStateChanged = "DoorStateChanged"
	PatchError            = "Error"
)

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// LineResult answers QueryLineOfSight and QueryLineOfFire; Kind is "sight"
// or "fire".
type LineResult struct {
	Kind  string        `json:"kind"`
	From  geometry.Vec2 `json:"from"`
	To    geometry.Vec2 `json:"to"`
	Clear bool          `json:"clear"`
}

// PathResult carries the steps after Start. Found is false when no path
// exists; an empty Path with Found set means Start == End.
type PathResult struct {
	Start geometry.Point   `json:"start"`
	End   geometry.Point   `json:"end"`
	Found bool             `json:"found"`
	Path  []geometry.Point `json:"path"`
}

type VisibleCells struct {
	Origin   geometry.Vec2 `json:"origin"`
	MaxRange float64       `json:"maxRange"`
	Cells    []string      `json:"cells"`
}

type DoorStateChanged struct {
	DoorID      string             `json:"doorId"`
	State       geometry.DoorState `json:"state"`
	TargetState geometry.DoorState `json:"targetState,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
