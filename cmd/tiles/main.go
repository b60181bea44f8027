package main

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/nfnt/resize"

	"github.com/voidshard/scene"
)

const desc = `Adds tiles to a project from an image.

The image is cut into tile sized squares (left to right, top to bottom). By default the squares
become the animation frames of one new tile; with --separate each square becomes a tile of it's own.
Frames are written into unused slots of the project tileset, which grows as needed.

Sheets that have grid lines between tiles can be read with --line-width.`

var cli struct {
	Input   string `short:"i" help:"input image"`
	Project string `short:"p" help:"project .json file to add tiles to (required)"`
	Output  string `short:"o" help:"where to write the updated project. Defaults to the input project"`
	Config  string `short:"c" help:"yaml config file"`

	// sheets exported with a grid between each tile
	LineWidth int `default:"0" help:"width of grid lines between tiles in the input image, in px"`

	Separate bool `help:"make one tile per square rather than one animated tile"`

	// don't write anything
	DryRun bool `help:"print out what you're planning"`
}

func decode(in io.Reader) (image.Image, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	decoders := []func(io.Reader) (image.Image, error){
		png.Decode,
		gif.Decode,
		jpeg.Decode,
	}

	var lastErr error
	for _, decoder := range decoders {
		im, err := decoder(bytes.NewBuffer(data))
		if err == nil {
			return im, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// sizeToTiles forces input image to be of a width, height of some multiple
// of the tile size (resized either up or down to the nearest full tile).
// We default to 1 tile high/wide.
func sizeToTiles(in image.Image, size int) image.Image {
	width := in.Bounds().Dx()
	height := in.Bounds().Dy()

	fitx := width / size
	fity := height / size

	// if we're more than half a tile short, make the image bigger
	// to fit, otherwise we'll resize downwards, shrinking the image
	if width%size > size/2 {
		fitx++
	}
	if height%size > size/2 {
		fity++
	}

	if fitx < 1 {
		fitx = 1
	}
	if fity < 1 {
		fity = 1
	}
	if fitx*size == width && fity*size == height {
		return in
	}

	return resize.Resize(uint(fitx*size), uint(fity*size), in, resize.NearestNeighbor)
}

// cutOut the square of the given size at (x0,y0) from the image
func cutOut(in image.Image, x0, y0, size int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	origin := in.Bounds().Min
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			out.Set(dx, dy, in.At(origin.X+x0+dx, origin.Y+y0+dy))
		}
	}
	return out
}

// squares cuts the image into tiles, skipping grid lines of lineWidth px
func squares(in image.Image, size, lineWidth int) []image.Image {
	if lineWidth <= 0 {
		in = sizeToTiles(in, size)
	}

	stride := size + lineWidth
	wide := (in.Bounds().Dx() - lineWidth) / stride
	high := (in.Bounds().Dy() - lineWidth) / stride

	out := []image.Image{}
	for ty := 0; ty < high; ty++ {
		for tx := 0; tx < wide; tx++ {
			out = append(out, cutOut(in, lineWidth+tx*stride, lineWidth+ty*stride, size))
		}
	}
	return out
}

func main() {
	kong.Parse(
		&cli,
		kong.Name("tiles"),
		kong.Description(desc),
	)

	if cli.Output == "" {
		cli.Output = cli.Project
	}

	cfg, err := scene.LoadConfig(cli.Config)
	if err != nil {
		panic(err)
	}

	project, err := scene.Open(cli.Project)
	if err != nil {
		panic(err)
	}

	f, err := os.Open(cli.Input)
	if err != nil {
		panic(err)
	}
	in, err := decode(f)
	f.Close()
	if err != nil {
		panic(err)
	}

	cells := squares(in, cfg.TileSize, cli.LineWidth)
	if len(cells) == 0 {
		panic(fmt.Sprintf("%s has no %dpx tiles", cli.Input, cfg.TileSize))
	}

	var tileset *scene.Tileset
	if project.Tileset == "" {
		tileset = scene.NewTileset(cfg.TileSize, len(cells))
	} else {
		tileset, err = scene.LoadTileset(project.Tileset, cfg.TileSize)
		if err != nil {
			panic(err)
		}
	}

	// claim a free frame for each square before writing anything, each new
	// tile is added to the project straight away so it's frames count as used
	added := []*scene.Tile{}
	frames := make([]int, len(cells))
	var tile *scene.Tile
	for i := range cells {
		if tile == nil || cli.Separate {
			tile = &scene.Tile{ID: project.NextTileID(), Frames: []int{}}
			project.Tiles = append(project.Tiles, tile)
			added = append(added, tile)
		}
		frames[i] = scene.FindFreeFrame(project.Tiles)
		tile.Frames = append(tile.Frames, frames[i])
	}

	for _, t := range added {
		fmt.Printf("tile %d: frames %v\n", t.ID, t.Frames)
	}
	if cli.DryRun {
		fmt.Println("dry-run detected: doing nothing")
		return
	}

	before := tileset.Frames()
	tileset.Resize(project.Tiles)
	if after := tileset.Frames(); after != before {
		fmt.Printf("tileset: %d -> %d frames\n", before, after)
	}
	for i, c := range cells {
		tileset.Import(frames[i], c)
	}

	project.Tileset, err = tileset.DataURI()
	if err != nil {
		panic(err)
	}

	err = project.WriteFile(cli.Output)
	if err != nil {
		panic(err)
	}
	fmt.Println("wrote", cli.Output)
}
