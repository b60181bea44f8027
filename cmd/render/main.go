package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/voidshard/scene"
)

const desc = `Renders a room of a project to a png image at some point in it's animation.`

var cli struct {
	Input  string `short:"i" help:"input project .json file (required)"`
	Output string `short:"o" help:"where to write the output png. Defaults to input + room + step + .png. Overwrites output file if it exists."`
	Config string `short:"c" help:"yaml config file"`

	Room int `short:"r" default:"0" help:"room id to render (0: the first room)"`

	// the animation step to render. Overrides --at if both are set.
	Step int           `default:"-1" help:"animation step to render"`
	At   time.Duration `help:"render the animation as it would be after this long (eg. 1.2s)"`

	Scale   uint `default:"1" help:"scale the output image by this much (must be at least 1)"`
	Overlay bool `help:"outline walls & mark events"`
}

func main() {
	kong.Parse(&cli, kong.Name("render"), kong.Description(desc))

	cfg, err := scene.LoadConfig(cli.Config)
	if err != nil {
		panic(err)
	}

	project, err := scene.Open(cli.Input)
	if err != nil {
		panic(err)
	}

	room := project.RoomByID(cli.Room)
	if cli.Room == 0 && len(project.Rooms) > 0 {
		room = project.Rooms[0]
	}
	if room == nil {
		panic(fmt.Sprintf("room %d not found in %s", cli.Room, cli.Input))
	}

	tileset, err := scene.LoadTileset(project.Tileset, cfg.TileSize)
	if err != nil {
		panic(err)
	}

	step := cli.Step
	if step < 0 {
		step = scene.StepAt(cli.At, cfg.FrameInterval)
	}

	if cli.Scale < 1 {
		cli.Scale = 1
	}
	if cli.Output == "" {
		cli.Output = fmt.Sprintf("%s_%d.%d.png", cli.Input, room.ID, step)
	}

	size := scene.RoomSize * cfg.TileSize
	frame := image.NewRGBA(image.Rect(0, 0, size, size))
	scene.RenderRoom(frame, project, tileset, room, step)
	log.Printf("rendered room %d step %d (%d tiles, %d events)\n", room.ID, step, len(project.Tiles), len(room.Events))

	var out image.Image = frame
	if cli.Scale > 1 {
		out = resize.Resize(uint(size)*cli.Scale, uint(size)*cli.Scale, out, resize.NearestNeighbor)
	}
	if cli.Overlay {
		out = overlay(out, room, float64(cfg.TileSize)*float64(cli.Scale))
	}

	err = savePng(cli.Output, out)
	if err != nil {
		panic(err)
	}

	fmt.Println("wrote", cli.Output)
}

// overlay outlines wall cells in red & marks events with a yellow dot
func overlay(in image.Image, room *scene.Room, cellSize float64) image.Image {
	dc := gg.NewContextForImage(in)
	dc.SetLineWidth(1)

	dc.SetColor(color.RGBA{255, 0, 0, 255})
	for y, row := range room.Wallmap {
		for x, wall := range row {
			if wall == 0 {
				continue
			}
			dc.DrawRectangle(float64(x)*cellSize+0.5, float64(y)*cellSize+0.5, cellSize-1, cellSize-1)
			dc.Stroke()
		}
	}

	dc.SetColor(color.RGBA{255, 255, 0, 255})
	for _, e := range room.Events {
		cx := (float64(e.Position.X) + 0.5) * cellSize
		cy := (float64(e.Position.Y) + 0.5) * cellSize
		dc.DrawCircle(cx, cy, cellSize/6)
		dc.Fill()
	}

	return dc.Image()
}

// savePng to disk
func savePng(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, buff.Bytes(), 0644)
}
