package geometry

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// EdgeAddress names an edge by its cell and the edge line's orientation:
// a Vertical edge at (X,Y) separates (X,Y) from (X+1,Y), a Horizontal edge
// at (X,Y) separates (X,Y) from (X,Y+1).
type EdgeAddress struct {
	X           int
	Y           int
	Orientation Orientation
}

// Cells returns the two cells on either side of e.
func (e EdgeAddress) Cells() (Point, Point) {
	if e.Orientation == Vertical {
		return Point{X: e.X, Y: e.Y}, Point{X: e.X + 1, Y: e.Y}
	}
	return Point{X: e.X, Y: e.Y}, Point{X: e.X, Y: e.Y + 1}
}

type TileCoordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Room lists the tiles that belong to one room id.
type Room struct {
	ID    int              `json:"id"`
	Name  string           `json:"name"`
	Tiles []TileCoordinate `json:"tiles"`
}

// BoardDefinition is the room-list board format: every tile is floor,
// tiles outside any room are corridor.
type BoardDefinition struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
	Rooms []Room `json:"rooms"`
}

// QuestDoor addresses its edge the EdgeAddress way; State is lower case.
type QuestDoor struct {
	ID          string `json:"id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation string `json:"orientation"`
	State       string `json:"state"`
}

// QuestBlockingWall fills Size tiles starting at (X,Y) along Orientation.
type QuestBlockingWall struct {
	ID          string `json:"id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation string `json:"orientation"`
	Size        int    `json:"size"`
}

// QuestDefinition carries the per-quest overlay for a board.
type QuestDefinition struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Doors         []QuestDoor         `json:"doors"`
	BlockingWalls []QuestBlockingWall `json:"blocking_walls"`
}

func LoadBoardFromFile(path string) (*BoardDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	var board BoardDefinition
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board JSON: %w", err)
	}

	return &board, nil
}

func LoadQuestFromFile(path string) (*QuestDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest file: %w", err)
	}

	var quest QuestDefinition
	if err := json.Unmarshal(data, &quest); err != nil {
		return nil, fmt.Errorf("failed to parse quest JSON: %w", err)
	}

	return &quest, nil
}

// MapFromBoard converts a board plus optional quest overlay into a map
// description. Walls go wherever room membership changes; quest blocking
// walls turn their tiles into Wall cells.
func MapFromBoard(board *BoardDefinition, quest *QuestDefinition) MapDefinition {
	w := board.Dimensions.Width
	h := board.Dimensions.Height

	roomOf := make(map[Point]string)
	for _, room := range board.Rooms {
		for _, tile := range room.Tiles {
			roomOf[Point{X: tile.X, Y: tile.Y}] = strconv.Itoa(room.ID)
		}
	}

	blocked := make(map[Point]bool)
	var doors []Door
	if quest != nil {
		for _, wall := range quest.BlockingWalls {
			size := wall.Size
			if size <= 0 {
				size = 1
			}
			for i := 0; i < size; i++ {
				p := Point{X: wall.X, Y: wall.Y}
				if wall.Orientation == "horizontal" {
					p.X += i
				} else {
					p.Y += i
				}
				blocked[p] = true
			}
		}
		for _, qd := range quest.Doors {
			doors = append(doors, questDoor(qd))
		}
	}

	cells := make([]CellDefinition, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Point{X: x, Y: y}
			typ := CellFloor
			if blocked[p] {
				typ = CellWall
			}
			cells = append(cells, CellDefinition{X: x, Y: y, Type: typ, RoomID: roomOf[p]})
		}
	}

	var walls []WallSegment
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Point{X: x, Y: y}
			if x < w-1 {
				right := Point{X: x + 1, Y: y}
				if roomOf[p] != roomOf[right] {
					walls = append(walls, WallSegment{P1: p, P2: right})
				}
			}
			if y < h-1 {
				below := Point{X: x, Y: y + 1}
				if roomOf[p] != roomOf[below] {
					walls = append(walls, WallSegment{P1: p, P2: below})
				}
			}
		}
	}

	return MapDefinition{Width: w, Height: h, Cells: cells, Walls: walls, Doors: doors}
}

func questDoor(qd QuestDoor) Door {
	orientation := Vertical
	if qd.Orientation == "horizontal" {
		orientation = Horizontal
	}
	a, b := EdgeAddress{X: qd.X, Y: qd.Y, Orientation: orientation}.Cells()

	state := DoorClosed
	switch qd.State {
	case "open":
		state = DoorOpen
	case "locked":
		state = DoorLocked
	}
	return Door{
		ID:          qd.ID,
		Segment:     []Point{a, b},
		Orientation: orientation,
		State:       state,
		HP:          100,
		MaxHP:       100,
	}
}
