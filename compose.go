package scene

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Layers are the three images a layer is rendered into. Nothing is
// coloured by the tileset itself: tile graphics only say *where* the
// foreground colour shows, the rest of a cell takes the background colour.
// See Combine.
type Layers struct {
	Background draw.Image
	Foreground draw.Image
	Tiles      draw.Image
}

// NewLayers returns transparent layers big enough for one room of `size`
// pixel tiles.
func NewLayers(size int) *Layers {
	r := image.Rect(0, 0, RoomSize*size, RoomSize*size)
	return &Layers{
		Background: image.NewRGBA(r),
		Foreground: image.NewRGBA(r),
		Tiles:      image.NewRGBA(r),
	}
}

// Clear resets all layers to transparent
func (l *Layers) Clear() {
	for _, img := range []draw.Image{l.Background, l.Foreground, l.Tiles} {
		draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
}

// cell returns the pixel area of tile (x,y)
func cell(x, y, size int) image.Rectangle {
	return image.Rect(x*size, y*size, (x+1)*size, (y+1)*size)
}

// fill paints a solid colour over r. A nil colour paints nothing.
func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	if c == nil {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// blit copies tileset frame `frame` to cell r of dst
func blit(dst draw.Image, r image.Rectangle, tileset *Tileset, frame int) {
	src := tileset.Locate(frame)
	draw.Draw(dst, r, tileset.Image, src.Min, draw.Over)
}

// RenderTileLayer paints the room's tile grid into `dst`.
// For every non empty cell the background & foreground layers are filled
// with the palette colours picked by Backmap & Foremap and the tile's
// current frame (from `frames`) is copied into the tiles layer.
// Empty cells (tile 0) are not touched in any layer.
func RenderTileLayer(dst *Layers, tileset *Tileset, frames FrameMap, palette Palette, room *Room) {
	colors := palette.colors()
	size := tileset.TileSize

	for ty := 0; ty < RoomSize; ty++ {
		for tx := 0; tx < RoomSize; tx++ {
			id := room.Tilemap[ty][tx]
			if id == 0 {
				continue
			}

			r := cell(tx, ty, size)
			fill(dst.Background, r, slot(colors, room.Backmap[ty][tx]))
			fill(dst.Foreground, r, slot(colors, room.Foremap[ty][tx]))

			frame, ok := frames[id]
			if !ok {
				continue
			}
			blit(dst.Tiles, r, tileset, frame)
		}
	}
}

// RenderEventLayer paints events that have a graphic into `dst`.
// Events are drawn with their graphic tile's current frame (frame 0 if the
// tile isn't known or the graphic data isn't a tile ID), with the palette
// background behind them (unless tagged transparent) and always with the
// highlight colour.
// Events without a graphic are not drawn.
func RenderEventLayer(dst *Layers, tileset *Tileset, frames FrameMap, palette Palette, events []*Event) {
	colors := palette.colors()
	size := tileset.TileSize

	for _, e := range events {
		id, ok := e.Graphic()
		if !ok {
			continue
		}
		if !inBounds(e.Position.X, e.Position.Y) {
			continue
		}

		frame := 0
		if id != 0 {
			frame = frames[id] // 0 if missing
		}
		r := cell(e.Position.X, e.Position.Y, size)

		if !e.IsTagged(TagTransparent) {
			fill(dst.Background, r, colors[SlotBackground])
		}
		fill(dst.Foreground, r, colors[SlotHighlight])
		blit(dst.Tiles, r, tileset, frame)
	}
}

// slot returns the colour at index i, or nil if there isn't one
func slot(colors [3]color.Color, i int) color.Color {
	if i < 0 || i >= len(colors) {
		return nil
	}
	return colors[i]
}

// Combine flattens rendered layers on to dst: the background is drawn, then
// the foreground colour wherever the tiles layer has an opaque pixel.
func Combine(dst draw.Image, l *Layers) {
	b := l.Background.Bounds()
	draw.Draw(dst, b, l.Background, b.Min, draw.Over)
	draw.DrawMask(dst, b, l.Foreground, b.Min, l.Tiles, l.Tiles.Bounds().Min, draw.Over)
}

// RenderRoom draws the given room at animation step `step` on to dst:
// the tile layer first, then the event layer on top.
// Rooms with a missing palette use DefaultPalette.
func RenderRoom(dst draw.Image, p *Project, tileset *Tileset, room *Room, step int) {
	frames := Resolve(p.Tiles, step)
	palette, ok := p.PaletteOf(room)
	if !ok {
		palette = DefaultPalette()
	}

	layers := NewLayers(tileset.TileSize)
	RenderTileLayer(layers, tileset, frames, palette, room)
	Combine(dst, layers)

	layers.Clear()
	RenderEventLayer(layers, tileset, frames, palette, room.Events)
	Combine(dst, layers)
}
