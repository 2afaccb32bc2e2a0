package geometry

func DevMap() MapDefinition {
	w := 26
	h := 19

	cells := make([]CellDefinition, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cells = append(cells, CellDefinition{X: x, Y: y, Type: CellFloor, RoomID: devRoom(x)})
		}
	}

	walls := make([]WallSegment, 0, h)
	// Full-height wall between columns 12 and 13 splits the board into left/right.
	for y := 0; y < h; y++ {
		if y == 9 {
			continue
		}
		walls = append(walls, WallSegment{P1: Point{X: 12, Y: y}, P2: Point{X: 13, Y: y}})
	}

	// Single door through that wall at row 9.
	doors := []Door{{
		ID:           "dev-door-0",
		Segment:      []Point{{X: 12, Y: 9}, {X: 13, Y: 9}},
		Orientation:  Vertical,
		State:        DoorClosed,
		OpenDuration: 1,
		HP:           100,
		MaxHP:        100,
	}}

	return MapDefinition{
		Width:  w,
		Height: h,
		Cells:  cells,
		Walls:  walls,
		Doors:  doors,
	}
}

func devRoom(x int) string {
	if x <= 12 {
		return "west"
	}
	return "east"
}
