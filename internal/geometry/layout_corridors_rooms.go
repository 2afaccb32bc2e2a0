package geometry

import "fmt"

// CorridorsAndRoomsMap lays out a ring corridor, a double-width north/south
// corridor and a single east/west corridor, with the four quadrants between
// them as rooms. Every room gets one closed door onto the corridor at the
// middle of its corridor-facing side.
func CorridorsAndRoomsMap(width, height int) MapDefinition {
	isCorr := func(x, y int) bool {
		if x == 0 || y == 0 || x == width-1 || y == height-1 {
			return true
		}
		v1 := (width/2 - 1)
		v2 := (width / 2)
		if x == v1 || x == v2 {
			return true
		}
		h := height / 2
		return y == h
	}
	room := func(x, y int) string {
		if isCorr(x, y) {
			return "corridor"
		}
		col := "w"
		if x > width/2 {
			col = "e"
		}
		row := "n"
		if y > height/2 {
			row = "s"
		}
		return "room-" + row + col
	}

	cells := make([]CellDefinition, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, CellDefinition{X: x, Y: y, Type: CellFloor, RoomID: room(x, y)})
		}
	}

	walls := make([]WallSegment, 0, width*height/2)
	for y := 0; y < height; y++ {
		for x := 0; x < width-1; x++ {
			if isCorr(x, y) != isCorr(x+1, y) {
				walls = append(walls, WallSegment{P1: Point{X: x, Y: y}, P2: Point{X: x + 1, Y: y}})
			}
		}
	}
	for y := 0; y < height-1; y++ {
		for x := 0; x < width; x++ {
			if isCorr(x, y) != isCorr(x, y+1) {
				walls = append(walls, WallSegment{P1: Point{X: x, Y: y}, P2: Point{X: x, Y: y + 1}})
			}
		}
	}

	var doors []Door
	if width >= 7 && height >= 7 {
		midY := height / 2
		n := midY / 2
		s := (midY + 1 + height - 2) / 2
		sockets := []struct {
			id   string
			a, b Point
		}{
			{"room-nw", Point{X: width/2 - 2, Y: n}, Point{X: width/2 - 1, Y: n}},
			{"room-ne", Point{X: width / 2, Y: n}, Point{X: width/2 + 1, Y: n}},
			{"room-sw", Point{X: width/2 - 2, Y: s}, Point{X: width/2 - 1, Y: s}},
			{"room-se", Point{X: width / 2, Y: s}, Point{X: width/2 + 1, Y: s}},
		}
		for _, sk := range sockets {
			doors = append(doors, Door{
				ID:           fmt.Sprintf("door-%s", sk.id),
				Segment:      []Point{sk.a, sk.b},
				Orientation:  Vertical,
				State:        DoorClosed,
				OpenDuration: 1,
				HP:           100,
				MaxHP:        100,
			})
		}
	}

	return MapDefinition{
		Width:  width,
		Height: height,
		Cells:  cells,
		Walls:  walls,
		Doors:  doors,
	}
}
