package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/draw"
)

var (
	red     = color.RGBA{255, 0, 0, 255}
	green   = color.RGBA{0, 255, 0, 255}
	blue    = color.RGBA{0, 0, 255, 255}
	magenta = color.RGBA{255, 0, 255, 255}
)

func testPalette() Palette {
	return Palette{Background: "#ff0000", Foreground: "#00ff00", Highlight: "#0000ff"}
}

// filledLayers returns layers painted with a colour nothing else uses, so
// we can see which pixels were written to
func filledLayers() *Layers {
	l := NewLayers(TileSize)
	for _, img := range []draw.Image{l.Background, l.Foreground, l.Tiles} {
		draw.Draw(img, img.Bounds(), image.NewUniform(magenta), image.Point{}, draw.Src)
	}
	return l
}

// at returns the colour in the middle of cell (x,y)
func at(img image.Image, x, y int) color.Color {
	return img.At(x*TileSize+TileSize/2, y*TileSize+TileSize/2)
}

func TestRenderTileLayer(t *testing.T) {
	ts := testTileset(4)
	room := NewRoom(1, 0)
	room.Tilemap[2][1] = 5
	room.Backmap[2][1] = SlotHighlight
	room.Foremap[2][1] = SlotForeground
	room.Tilemap[3][3] = 6
	room.Backmap[3][3] = SlotBackground
	room.Foremap[3][3] = SlotBackground

	frames := Resolve([]*Tile{{ID: 5, Frames: []int{3}}, {ID: 6, Frames: []int{1, 2}}}, 1)
	l := filledLayers()
	RenderTileLayer(l, ts, frames, testPalette(), room)

	assert.Equal(t, blue, at(l.Background, 1, 2))
	assert.Equal(t, green, at(l.Foreground, 1, 2))
	assert.Equal(t, frameColor(3), at(l.Tiles, 1, 2))

	assert.Equal(t, red, at(l.Background, 3, 3))
	assert.Equal(t, red, at(l.Foreground, 3, 3))
	assert.Equal(t, frameColor(2), at(l.Tiles, 3, 3))

	// whole cell is covered, edges included
	assert.Equal(t, frameColor(3), l.Tiles.At(8, 16))
	assert.Equal(t, frameColor(3), l.Tiles.At(15, 23))
	assert.Equal(t, magenta, l.Tiles.At(16, 23))
}

func TestRenderTileLayerSkipsEmptyCells(t *testing.T) {
	ts := testTileset(2)
	room := NewRoom(1, 0)
	room.Tilemap[0][1] = 1
	room.Backmap[0][0] = SlotForeground // not used: the cell is empty
	room.Foremap[0][0] = SlotForeground

	l := filledLayers()
	RenderTileLayer(l, ts, FrameMap{1: 1}, testPalette(), room)

	for y := 0; y < RoomSize; y++ {
		for x := 0; x < RoomSize; x++ {
			if x == 1 && y == 0 {
				continue
			}
			for px := 0; px < TileSize; px++ {
				for py := 0; py < TileSize; py++ {
					for _, img := range []image.Image{l.Background, l.Foreground, l.Tiles} {
						c := img.At(x*TileSize+px, y*TileSize+py)
						if c != color.Color(magenta) {
							t.Fatalf("cell (%d,%d) was written to: %v", x, y, c)
						}
					}
				}
			}
		}
	}
	assert.Equal(t, frameColor(1), at(l.Tiles, 1, 0))
}

func TestRenderTileLayerMissingColoursAndFrames(t *testing.T) {
	ts := testTileset(2)
	room := NewRoom(1, 0)
	room.Tilemap[0][0] = 9 // not in the frame map
	room.Backmap[0][0] = 7 // no such slot
	room.Foremap[0][0] = SlotBackground

	pal := testPalette()
	pal.Background = "not a colour"

	l := filledLayers()
	RenderTileLayer(l, ts, FrameMap{}, pal, room)

	assert.Equal(t, magenta, at(l.Background, 0, 0))
	assert.Equal(t, magenta, at(l.Foreground, 0, 0))
	assert.Equal(t, magenta, at(l.Tiles, 0, 0))
}

func TestRenderEventLayer(t *testing.T) {
	ts := testTileset(4)
	events := []*Event{
		{ID: 1, Position: Point{X: 3, Y: 4}, Fields: []Field{Text("say", "hi"), TileField(KeyGraphic, 2), TileField(KeyGraphic, 1)}},
		{ID: 2, Position: Point{X: 5, Y: 5}, Fields: []Field{TileField(KeyGraphic, 1), Tag(TagTransparent)}},
		{ID: 3, Position: Point{X: 6, Y: 6}, Fields: []Field{Text("say", "no graphic")}},
		{ID: 4, Position: Point{X: 7, Y: 7}, Fields: []Field{TileField(KeyGraphic, 42)}},
	}
	frames := FrameMap{1: 2, 2: 3}

	l := filledLayers()
	RenderEventLayer(l, ts, frames, testPalette(), events)

	// first graphic field wins
	assert.Equal(t, red, at(l.Background, 3, 4))
	assert.Equal(t, blue, at(l.Foreground, 3, 4))
	assert.Equal(t, frameColor(3), at(l.Tiles, 3, 4))

	// transparent: no background, still highlighted
	assert.Equal(t, magenta, at(l.Background, 5, 5))
	assert.Equal(t, blue, at(l.Foreground, 5, 5))
	assert.Equal(t, frameColor(2), at(l.Tiles, 5, 5))

	// no graphic: not drawn at all
	assert.Equal(t, magenta, at(l.Background, 6, 6))
	assert.Equal(t, magenta, at(l.Foreground, 6, 6))
	assert.Equal(t, magenta, at(l.Tiles, 6, 6))

	// unknown tile: frame 0
	assert.Equal(t, frameColor(0), at(l.Tiles, 7, 7))
}

func TestRenderEventLayerNoBackground(t *testing.T) {
	ts := testTileset(1)
	events := []*Event{{ID: 1, Position: Point{X: 0, Y: 0}, Fields: []Field{TileField(KeyGraphic, 1)}}}
	pal := testPalette()
	pal.Background = ""

	l := filledLayers()
	RenderEventLayer(l, ts, FrameMap{1: 0}, pal, events)

	assert.Equal(t, magenta, at(l.Background, 0, 0))
	assert.Equal(t, blue, at(l.Foreground, 0, 0))
}

func TestRenderDoesNotMutateInputs(t *testing.T) {
	p := testProject()
	room := p.Rooms[1]
	room.Tilemap[1][1] = 7
	room.Events[0].Fields = []Field{TileField(KeyGraphic, 7)}

	before := testProject()
	before.Rooms[1].Tilemap[1][1] = 7
	before.Rooms[1].Events[0].Fields = []Field{TileField(KeyGraphic, 7)}

	dst := image.NewRGBA(image.Rect(0, 0, RoomSize*TileSize, RoomSize*TileSize))
	RenderRoom(dst, p, testTileset(3), room, 1)

	assert.Equal(t, before, p)
}

func TestCombine(t *testing.T) {
	l := NewLayers(TileSize)
	draw.Draw(l.Background, l.Background.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(l.Foreground, l.Foreground.Bounds(), image.NewUniform(green), image.Point{}, draw.Src)
	l.Tiles.Set(5, 5, color.RGBA{0, 0, 0, 255}) // any opaque pixel shows the foreground

	dst := image.NewRGBA(l.Background.Bounds())
	Combine(dst, l)

	assert.Equal(t, green, dst.At(5, 5))
	assert.Equal(t, red, dst.At(6, 5))
}

func TestRenderRoom(t *testing.T) {
	p := New("tileset.png")
	p.Palettes[0] = testPalette()
	p.Tiles = []*Tile{{ID: 1, Frames: []int{0, 1}}}

	room := p.Rooms[0]
	room.Tilemap[0][0] = 1
	room.Backmap[0][0] = SlotBackground
	room.Foremap[0][0] = SlotForeground
	room.Events = []*Event{{ID: 1, Position: Point{X: 2, Y: 0}, Fields: []Field{TileField(KeyGraphic, 1)}}}

	// frame 0 is solid, frame 1 is empty
	ts := NewTileset(TileSize, 2)
	draw.Draw(ts.Image, ts.Locate(0), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, RoomSize*TileSize, RoomSize*TileSize))
	RenderRoom(dst, p, ts, room, 0)
	assert.Equal(t, green, at(dst, 0, 0)) // foreground through the tile
	assert.Equal(t, blue, at(dst, 2, 0))  // event highlight
	assert.Equal(t, color.RGBA{}, at(dst, 1, 0))

	dst = image.NewRGBA(dst.Bounds())
	RenderRoom(dst, p, ts, room, 1)
	assert.Equal(t, red, at(dst, 0, 0)) // empty frame: only background shows
	assert.Equal(t, red, at(dst, 2, 0))
}

func TestRenderEventLayerUnusableGraphic(t *testing.T) {
	ts := testTileset(3)
	events := []*Event{
		{ID: 1, Position: Point{X: 1, Y: 1}, Fields: []Field{{Key: KeyGraphic, Type: FieldTile, Value: decodeValue(FieldTile, []byte(`"2"`))}}},
		{ID: 2, Position: Point{X: 2, Y: 1}, Fields: []Field{{Key: KeyGraphic, Type: FieldTile, Value: RawValue(`null`)}}},
	}

	l := filledLayers()
	RenderEventLayer(l, ts, FrameMap{2: 1}, testPalette(), events)

	for _, x := range []int{1, 2} {
		assert.Equal(t, red, at(l.Background, x, 1))
		assert.Equal(t, blue, at(l.Foreground, x, 1))
		assert.Equal(t, frameColor(0), at(l.Tiles, x, 1))
	}
}
