package geometry

import "fmt"

type ValidationResult struct {
	Valid  bool
	Issues []string
}

// ValidateMap reports structural problems in def that NewGraph would
// silently skip or tolerate.
func ValidateMap(def MapDefinition) ValidationResult {
	var issues []string
	add := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if def.Width <= 0 || def.Height <= 0 {
		add("map dimensions must be positive, got %dx%d", def.Width, def.Height)
	}
	inBounds := func(p Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < def.Width && p.Y < def.Height
	}

	types := make(map[Point]CellType, len(def.Cells))
	for _, c := range def.Cells {
		p := Point{X: c.X, Y: c.Y}
		if _, dup := types[p]; dup {
			add("duplicate cell definition at (%d,%d)", c.X, c.Y)
		}
		types[p] = c.Type
		if !inBounds(p) {
			add("cell at (%d,%d) is out of map bounds", c.X, c.Y)
		}
	}

	for _, wall := range def.Walls {
		if !wall.P1.Adjacent(wall.P2) {
			add("wall %v--%v does not join adjacent cells", wall.P1, wall.P2)
		}
	}

	seen := make(map[string]bool, len(def.Doors))
	for _, door := range def.Doors {
		if door.ID == "" {
			add("door found with no id")
		} else if seen[door.ID] {
			add("duplicate door id %q", door.ID)
		}
		seen[door.ID] = true

		if !door.State.Valid() {
			add("door %q has unknown state %q", door.ID, door.State)
		}
		if len(door.Segment) != 2 {
			add("door %q must have exactly 2 segment cells, got %d", door.ID, len(door.Segment))
			continue
		}
		if !door.Segment[0].Adjacent(door.Segment[1]) {
			add("door %q segment %v--%v is not adjacent", door.ID, door.Segment[0], door.Segment[1])
		}
		for _, p := range door.Segment {
			if !inBounds(p) {
				add("door %q segment cell (%d,%d) is out of map bounds", door.ID, p.X, p.Y)
			} else if types[p] != CellFloor {
				add("door %q segment cell (%d,%d) is not a Floor cell", door.ID, p.X, p.Y)
			}
		}
	}

	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
