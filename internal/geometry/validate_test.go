package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMap_DevMapsAreValid(t *testing.T) {
	assert.True(t, ValidateMap(DevMap()).Valid)
	res := ValidateMap(CorridorsAndRoomsMap(15, 11))
	assert.True(t, res.Valid, res.Issues)
}

func TestValidateMap_ReportsIssues(t *testing.T) {
	def := MapDefinition{
		Width:  2,
		Height: 1,
		Cells: []CellDefinition{
			{X: 0, Y: 0, Type: CellFloor},
			{X: 0, Y: 0, Type: CellFloor},
			{X: 5, Y: 0, Type: CellFloor},
		},
		Walls: []WallSegment{{P1: Point{X: 0, Y: 0}, P2: Point{X: 1, Y: 1}}},
		Doors: []Door{
			{ID: "", Segment: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, State: DoorClosed},
			{ID: "d", Segment: []Point{{X: 0, Y: 0}}, State: DoorOpen},
			{ID: "d", Segment: []Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, State: "Ajar"},
		},
	}

	res := ValidateMap(def)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Issues, "duplicate cell definition at (0,0)")
	assert.Contains(t, res.Issues, "cell at (5,0) is out of map bounds")
	assert.Contains(t, res.Issues, "wall 0,0--1,1 does not join adjacent cells")
	assert.Contains(t, res.Issues, "door found with no id")
	assert.Contains(t, res.Issues, `door "d" must have exactly 2 segment cells, got 1`)
	assert.Contains(t, res.Issues, `duplicate door id "d"`)
	assert.Contains(t, res.Issues, `door "d" has unknown state "Ajar"`)
	// (1,0) was never defined, so it is Void.
	assert.Contains(t, res.Issues, `door "d" segment cell (1,0) is not a Floor cell`)
}

func TestValidateMap_NonPositiveDimensions(t *testing.T) {
	res := ValidateMap(MapDefinition{})
	assert.Equal(t, []string{"map dimensions must be positive, got 0x0"}, res.Issues)
}
