package main

import (
	"fmt"
	"image"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/voidshard/scene"
)

const desc = `Opens a window showing a room of a project with it's tiles animating.`

var cli struct {
	Input  string `short:"i" help:"input project .json file (required)"`
	Config string `short:"c" help:"yaml config file"`

	Room  int `short:"r" default:"0" help:"room id to show (0: the first room)"`
	Scale int `default:"4" help:"window scale"`
}

// player redraws the room whenever the animation step changes
type player struct {
	project  *scene.Project
	tileset  *scene.Tileset
	room     *scene.Room
	interval time.Duration
	scale    int

	start  time.Time
	step   int
	frame  *image.RGBA
	screen *ebiten.Image
}

func (p *player) Update() error {
	// the step counter runs over the longest animation so short animations
	// hold their first frame until the cycle restarts
	step := scene.StepAt(time.Since(p.start), p.interval) % scene.CycleLength(p.project.Tiles)
	if p.screen != nil && step == p.step {
		return nil
	}

	p.step = step
	for i := range p.frame.Pix {
		p.frame.Pix[i] = 0
	}
	scene.RenderRoom(p.frame, p.project, p.tileset, p.room, step)

	if p.screen == nil {
		p.screen = ebiten.NewImageFromImage(p.frame)
	} else {
		p.screen.WritePixels(p.frame.Pix)
	}
	return nil
}

func (p *player) Draw(screen *ebiten.Image) {
	if p.screen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(p.scale), float64(p.scale))
	screen.DrawImage(p.screen, op)
}

func (p *player) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := p.frame.Bounds()
	return b.Dx() * p.scale, b.Dy() * p.scale
}

func main() {
	kong.Parse(&cli, kong.Name("player"), kong.Description(desc))

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

	if cli.Scale < 1 {
		cli.Scale = 1
	}
	size := scene.RoomSize * cfg.TileSize
	p := &player{
		project:  project,
		tileset:  tileset,
		room:     room,
		interval: cfg.FrameInterval,
		scale:    cli.Scale,
		start:    time.Now(),
		frame:    image.NewRGBA(image.Rect(0, 0, size, size)),
	}

	ebiten.SetWindowSize(size*cli.Scale, size*cli.Scale)
	ebiten.SetWindowTitle(fmt.Sprintf("%s: room %d", cli.Input, room.ID))
	if err := ebiten.RunGame(p); err != nil {
		panic(err)
	}
}
