package scene

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

const dataURIPrefix = "data:image/png;base64,"

// Region is the pixel area of one frame within a tileset image
type Region struct {
	X    int
	Y    int
	Size int
}

// Rect returns the region as an image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Size, r.Y+r.Size)
}

// Locate returns where frame `frame` lives in a tileset `width` pixels wide
// made of `size` pixel tiles packed left to right, top to bottom.
func Locate(width, size, frame int) Region {
	columns := width / size
	return Region{
		X:    size * (frame % columns),
		Y:    size * (frame / columns),
		Size: size,
	}
}

// Tileset is the packed image that holds every frame of every tile.
type Tileset struct {
	Image    *image.RGBA
	TileSize int
}

// NewTileset returns a blank tileset TilesetColumns wide with room for at
// least `frames` frames.
func NewTileset(size, frames int) *Tileset {
	if frames < 1 {
		frames = 1
	}
	rows := (frames + TilesetColumns - 1) / TilesetColumns
	return &Tileset{
		Image:    image.NewRGBA(image.Rect(0, 0, TilesetColumns*size, rows*size)),
		TileSize: size,
	}
}

// NewTilesetFromImage copies the given image into a new tileset.
// The image must be at least one tile wide & high.
func NewTilesetFromImage(in image.Image, size int) (*Tileset, error) {
	b := in.Bounds()
	if size <= 0 {
		return nil, fmt.Errorf("invalid tile size %d", size)
	}
	if b.Dx() < size || b.Dy() < size {
		return nil, fmt.Errorf("tileset %dx%d is smaller than one %dpx tile", b.Dx(), b.Dy(), size)
	}
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), in, b.Min, draw.Src)
	return &Tileset{Image: img, TileSize: size}, nil
}

// LoadTileset reads a tileset from a resource id, either a PNG data URI
// (as stored in projects) or the path to a PNG file.
func LoadTileset(resource string, size int) (*Tileset, error) {
	var data []byte
	if strings.HasPrefix(resource, dataURIPrefix) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(resource, dataURIPrefix))
		if err != nil {
			return nil, fmt.Errorf("decode tileset data uri: %w", err)
		}
		data = decoded
	} else {
		fpath, err := homedir.Expand(resource)
		if err != nil {
			return nil, err
		}
		data, err = os.ReadFile(fpath)
		if err != nil {
			return nil, fmt.Errorf("read tileset %s: %w", fpath, err)
		}
	}

	in, err := png.Decode(bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("decode tileset png: %w", err)
	}
	return NewTilesetFromImage(in, size)
}

// DataURI encodes the tileset as a PNG data URI
func (t *Tileset) DataURI() (string, error) {
	buff := new(bytes.Buffer)
	if err := png.Encode(buff, t.Image); err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buff.Bytes()), nil
}

// Locate returns the pixel area of the given frame
func (t *Tileset) Locate(frame int) image.Rectangle {
	return Locate(t.Image.Bounds().Dx(), t.TileSize, frame).Rect()
}

// Frames returns how many frames fit in the tileset
func (t *Tileset) Frames() int {
	b := t.Image.Bounds()
	return (b.Dx() / t.TileSize) * (b.Dy() / t.TileSize)
}

// Extract returns a copy of the given frame
func (t *Tileset) Extract(frame int) *image.RGBA {
	r := t.Locate(frame)
	out := image.NewRGBA(image.Rect(0, 0, t.TileSize, t.TileSize))
	draw.Draw(out, out.Bounds(), t.Image, r.Min, draw.Src)
	return out
}

// Write replaces the given frame with `src` (the top left TileSize square
// of it). The frame is cleared first so transparent pixels in `src` stay
// transparent.
func (t *Tileset) Write(frame int, src image.Image) {
	r := t.Locate(frame)
	draw.Draw(t.Image, r, image.Transparent, image.Point{}, draw.Src)
	draw.Draw(t.Image, r, src, src.Bounds().Min, draw.Over)
}

// Import scales `src` to a single tile (nearest neighbour, keeping hard
// pixel edges) and writes it to the given frame.
func (t *Tileset) Import(frame int, src image.Image) {
	b := src.Bounds()
	if b.Dx() != t.TileSize || b.Dy() != t.TileSize {
		src = resize.Resize(uint(t.TileSize), uint(t.TileSize), src, resize.NearestNeighbor)
	}
	t.Write(frame, src)
}

// Resize grows (or shrinks) the tileset to TilesetColumns wide and just
// enough rows to hold the highest frame used by `tiles`.
// Existing pixels keep their coordinates.
//
// Panics if `tiles` use no frames at all.
func (t *Tileset) Resize(tiles []*Tile) {
	maxFrame := -1
	for _, tile := range tiles {
		for _, f := range tile.Frames {
			if f > maxFrame {
				maxFrame = f
			}
		}
	}
	if maxFrame < 0 {
		panic("cannot resize tileset: tiles have no frames")
	}

	rows := (maxFrame + TilesetColumns) / TilesetColumns // ceil((maxFrame+1) / columns)
	img := image.NewRGBA(image.Rect(0, 0, TilesetColumns*t.TileSize, rows*t.TileSize))
	draw.Draw(img, img.Bounds(), t.Image, t.Image.Bounds().Min, draw.Src)
	t.Image = img
}
