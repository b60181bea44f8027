/* this file holds the on disk (JSON) form of a project & the functions that
move between it and the in memory structs.

The JSON layout is shared with the editor & player that embed the same
project bundle, so field names here must not change.
*/
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
)

type jsonProject struct {
	Rooms    []*jsonRoom `json:"rooms"`
	Palettes []Palette   `json:"palettes"`
	Tileset  string      `json:"tileset"`
	Tiles    []*jsonTile `json:"tiles"`
}

type jsonRoom struct {
	ID      int          `json:"id"`
	Palette int          `json:"palette"`
	Tilemap Grid         `json:"tilemap"`
	Backmap Grid         `json:"backmap"`
	Foremap Grid         `json:"foremap"`
	Wallmap Grid         `json:"wallmap"`
	Events  []*jsonEvent `json:"events"`
}

type jsonTile struct {
	ID     int   `json:"id"`
	Frames []int `json:"frames"`
}

type jsonEvent struct {
	ID       int          `json:"id"`
	Position [2]int       `json:"position"`
	Fields   []*jsonField `json:"fields"`
}

type jsonField struct {
	Key  string          `json:"key"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// toJSON converts the project into it's JSON structs
func (p *Project) toJSON() (*jsonProject, error) {
	out := &jsonProject{
		Rooms:    make([]*jsonRoom, len(p.Rooms)),
		Palettes: p.Palettes,
		Tileset:  p.Tileset,
		Tiles:    make([]*jsonTile, len(p.Tiles)),
	}
	if out.Palettes == nil {
		out.Palettes = []Palette{}
	}

	for i, t := range p.Tiles {
		out.Tiles[i] = &jsonTile{ID: t.ID, Frames: t.Frames}
	}

	for i, r := range p.Rooms {
		jr := &jsonRoom{
			ID:      r.ID,
			Palette: r.Palette,
			Tilemap: r.Tilemap,
			Backmap: r.Backmap,
			Foremap: r.Foremap,
			Wallmap: r.Wallmap,
			Events:  make([]*jsonEvent, len(r.Events)),
		}
		for j, e := range r.Events {
			je := &jsonEvent{
				ID:       e.ID,
				Position: [2]int{e.Position.X, e.Position.Y},
				Fields:   make([]*jsonField, len(e.Fields)),
			}
			for k, f := range e.Fields {
				data, err := encodeValue(f.Value)
				if err != nil {
					return nil, fmt.Errorf("event %d field %q: %w", e.ID, f.Key, err)
				}
				je.Fields[k] = &jsonField{Key: f.Key, Type: f.Type, Data: data}
			}
			jr.Events[j] = je
		}
		out.Rooms[i] = jr
	}

	return out, nil
}

// fromJSON builds a project from it's JSON structs.
// Null entries in any list are an error.
func (in *jsonProject) fromJSON() (*Project, error) {
	p := &Project{
		Rooms:    make([]*Room, len(in.Rooms)),
		Palettes: in.Palettes,
		Tileset:  in.Tileset,
		Tiles:    make([]*Tile, len(in.Tiles)),
	}

	for i, t := range in.Tiles {
		if t == nil {
			return nil, fmt.Errorf("tile %d is null", i)
		}
		p.Tiles[i] = &Tile{ID: t.ID, Frames: t.Frames}
	}

	for i, jr := range in.Rooms {
		if jr == nil {
			return nil, fmt.Errorf("room %d is null", i)
		}
		r := &Room{
			ID:      jr.ID,
			Palette: jr.Palette,
			Tilemap: jr.Tilemap,
			Backmap: jr.Backmap,
			Foremap: jr.Foremap,
			Wallmap: jr.Wallmap,
			Events:  make([]*Event, len(jr.Events)),
		}
		for j, je := range jr.Events {
			if je == nil {
				return nil, fmt.Errorf("room %d event %d is null", jr.ID, j)
			}
			e := &Event{
				ID:       je.ID,
				Position: Point{X: je.Position[0], Y: je.Position[1]},
				Fields:   make([]Field, len(je.Fields)),
			}
			for k, f := range je.Fields {
				if f == nil {
					return nil, fmt.Errorf("event %d field %d is null", je.ID, k)
				}
				e.Fields[k] = Field{Key: f.Key, Type: f.Type, Value: decodeValue(f.Type, f.Data)}
			}
			r.Events[j] = e
		}
		p.Rooms[i] = r
	}

	return p, nil
}

// Encode the project as JSON to a io.Writer stream
func (p *Project) Encode(w io.Writer) error {
	out, err := p.toJSON()
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(out)
}

// Decode a JSON project. The result is validated, so anything returned
// without error is safe to render.
func Decode(r io.Reader) (*Project, error) {
	in := &jsonProject{}
	if err := json.NewDecoder(r).Decode(in); err != nil {
		return nil, err
	}

	p, err := in.fromJSON()
	if err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	return p, nil
}

// Open reads a project from a JSON file
func Open(fname string) (*Project, error) {
	fpath, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile writes the project as JSON to the given file
func (p *Project) WriteFile(fname string) error {
	fpath, err := homedir.Expand(fname)
	if err != nil {
		return err
	}

	buff := bytes.Buffer{}
	err = p.Encode(&buff)
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, buff.Bytes(), 0644)
}
