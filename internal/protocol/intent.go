package protocol

import (
	"encoding/json"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
)

// Intent types accepted on /stream.
const (
	IntentQueryLineOfSight  = "QueryLineOfSight"
	IntentQueryLineOfFire   = "QueryLineOfFire"
	IntentQueryPath         = "QueryPath"
	IntentQueryVisibleCells = "QueryVisibleCells"
	IntentSetDoorState      = "SetDoorState"
)

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// QueryLine asks for line of sight or line of fire between two continuous
// positions, depending on the envelope type.
type QueryLine struct {
	From geometry.Vec2 `json:"from"`
	To   geometry.Vec2 `json:"to"`
}

type QueryPath struct {
	Start            geometry.Point `json:"start"`
	End              geometry.Point `json:"end"`
	AllowClosedDoors bool           `json:"allowClosedDoors"`
}

type QueryVisibleCells struct {
	Origin   geometry.Vec2 `json:"origin"`
	MaxRange float64       `json:"maxRange,omitempty"`
}

type RequestSetDoorState struct {
	DoorID      string             `json:"doorId"`
	State       geometry.DoorState `json:"state"`
	TargetState geometry.DoorState `json:"targetState,omitempty"`
}
