/* Package scene holds the project model of a tile based room editor / player:
rooms made of fixed size tile grids, a shared tileset with per tile animation
frames, room palettes and events (positioned objects carrying typed fields).

It also knows how to paint rooms into images (see compose.go) but leaves the
final presentation, input & scripting to whatever embeds it.
*/
package scene

import (
	"fmt"
)

const (
	// RoomSize is the width & height of every room, in tiles
	RoomSize = 16

	// TileSize is the default width & height of a tile, in pixels
	TileSize = 8

	// TilesetColumns is how many tiles wide a packed tileset is after Resize
	TilesetColumns = 16
)

// Grid is a RoomSize x RoomSize grid of values, rows outer (ie. grid[y][x])
type Grid [][]int

// NewGrid returns a zeroed RoomSize x RoomSize grid
func NewGrid() Grid {
	g := make(Grid, RoomSize)
	for y := range g {
		g[y] = make([]int, RoomSize)
	}
	return g
}

// valid returns if the grid is exactly RoomSize x RoomSize
func (g Grid) valid() bool {
	if len(g) != RoomSize {
		return false
	}
	for _, row := range g {
		if len(row) != RoomSize {
			return false
		}
	}
	return true
}

// Point is a tile coordinate within a room
type Point struct {
	X int
	Y int
}

// Tile is a reusable (possibly animated) graphic. Frames index into the
// packed tileset image.
type Tile struct {
	ID     int
	Frames []int
}

// Event is something placed in a room that has data attached to it.
// Event IDs are unique across the whole project, not just the room.
type Event struct {
	ID       int
	Position Point
	Fields   []Field
}

// Room is a single screen of tiles.
//   - Tilemap holds tile IDs (0 is the empty tile)
//   - Backmap & Foremap hold palette slots for the background / foreground colours
//   - Wallmap marks cells that block movement (non zero)
type Room struct {
	ID      int
	Palette int
	Tilemap Grid
	Backmap Grid
	Foremap Grid
	Wallmap Grid
	Events  []*Event
}

// NewRoom returns a room with empty grids using the given palette
func NewRoom(id, palette int) *Room {
	return &Room{
		ID:      id,
		Palette: palette,
		Tilemap: NewGrid(),
		Backmap: NewGrid(),
		Foremap: NewGrid(),
		Wallmap: NewGrid(),
		Events:  []*Event{},
	}
}

// Project is everything that makes up a game: rooms, palettes, tiles and a
// reference to the tileset image all of the tile frames are drawn from.
type Project struct {
	Rooms    []*Room
	Palettes []Palette
	Tileset  string
	Tiles    []*Tile
}

// New returns a minimal valid project: one empty room, one palette & a
// single one frame tile.
func New(tileset string) *Project {
	return &Project{
		Rooms:    []*Room{NewRoom(1, 0)},
		Palettes: []Palette{DefaultPalette()},
		Tileset:  tileset,
		Tiles:    []*Tile{{ID: 1, Frames: []int{0}}},
	}
}

// AllEvents returns every event in every room, in room order.
func (p *Project) AllEvents() []*Event {
	events := []*Event{}
	for _, r := range p.Rooms {
		events = append(events, r.Events...)
	}
	return events
}

// PaletteOf returns the palette the given room uses (if it exists)
func (p *Project) PaletteOf(r *Room) (Palette, bool) {
	if r.Palette < 0 || r.Palette >= len(p.Palettes) {
		return Palette{}, false
	}
	return p.Palettes[r.Palette], true
}

// Validate checks the invariants of the project data.
// The first problem found is returned.
func (p *Project) Validate() error {
	tiles := map[int]*Tile{}
	for i, t := range p.Tiles {
		if t == nil {
			return fmt.Errorf("tile %d is nil", i)
		}
		if _, ok := tiles[t.ID]; ok {
			return fmt.Errorf("duplicate tile id %d", t.ID)
		}
		if len(t.Frames) == 0 {
			return fmt.Errorf("tile %d has no frames", t.ID)
		}
		tiles[t.ID] = t
	}

	for i, pal := range p.Palettes {
		if err := pal.Validate(); err != nil {
			return fmt.Errorf("palette %d: %w", i, err)
		}
	}

	rooms := map[int]bool{}
	events := map[int]bool{}
	for i, r := range p.Rooms {
		if r == nil {
			return fmt.Errorf("room %d is nil", i)
		}
		if rooms[r.ID] {
			return fmt.Errorf("duplicate room id %d", r.ID)
		}
		rooms[r.ID] = true

		if _, ok := p.PaletteOf(r); !ok {
			return fmt.Errorf("room %d uses palette %d of %d", r.ID, r.Palette, len(p.Palettes))
		}

		for name, g := range map[string]Grid{"tilemap": r.Tilemap, "backmap": r.Backmap, "foremap": r.Foremap, "wallmap": r.Wallmap} {
			if !g.valid() {
				return fmt.Errorf("room %d %s is not %dx%d", r.ID, name, RoomSize, RoomSize)
			}
		}

		for y, row := range r.Tilemap {
			for x, id := range row {
				if id == 0 {
					continue
				}
				if _, ok := tiles[id]; !ok {
					return fmt.Errorf("room %d cell (%d,%d) uses unknown tile %d", r.ID, x, y, id)
				}
			}
		}

		for j, e := range r.Events {
			if e == nil {
				return fmt.Errorf("room %d event %d is nil", r.ID, j)
			}
			if events[e.ID] {
				return fmt.Errorf("duplicate event id %d", e.ID)
			}
			events[e.ID] = true
			if !inBounds(e.Position.X, e.Position.Y) {
				return fmt.Errorf("event %d position (%d,%d) outside room", e.ID, e.Position.X, e.Position.Y)
			}
		}
	}

	return nil
}

func inBounds(x, y int) bool {
	return x >= 0 && x < RoomSize && y >= 0 && y < RoomSize
}
