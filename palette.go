package scene

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// Palette slots, as used by the colour grids of a room
	SlotBackground = 0
	SlotForeground = 1
	SlotHighlight  = 2
)

// Palette is the set of colours a room is recoloured with.
// Colours are hex strings ("#rrggbb" or "#rgb").
// An empty Background means "draw no background".
type Palette struct {
	Background string
	Foreground string
	Highlight  string
}

// DefaultPalette returns a black / white / grey palette
func DefaultPalette() Palette {
	return Palette{Background: "#000000", Foreground: "#ffffff", Highlight: "#808080"}
}

// Slot returns the colour string for slot i (0: background, 1: foreground,
// 2: highlight).
func (p Palette) Slot(i int) (string, bool) {
	switch i {
	case SlotBackground:
		return p.Background, true
	case SlotForeground:
		return p.Foreground, true
	case SlotHighlight:
		return p.Highlight, true
	}
	return "", false
}

// Color returns the parsed colour of slot i. False is returned if the slot
// doesn't exist, is empty or can't be parsed.
func (p Palette) Color(i int) (color.Color, bool) {
	s, ok := p.Slot(i)
	if !ok || s == "" {
		return nil, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, false
	}
	return c.Clamped(), true
}

// colors resolves all three slots up front so we're not re-parsing
// strings per cell.
func (p Palette) colors() [3]color.Color {
	out := [3]color.Color{}
	for i := range out {
		c, ok := p.Color(i)
		if ok {
			out[i] = c
		}
	}
	return out
}

// Validate returns an error if any non empty slot isn't a hex colour.
func (p Palette) Validate() error {
	for i := SlotBackground; i <= SlotHighlight; i++ {
		s, _ := p.Slot(i)
		if s == "" {
			continue
		}
		if _, err := colorful.Hex(s); err != nil {
			return fmt.Errorf("slot %d %q: %w", i, s, err)
		}
	}
	return nil
}

// MarshalJSON writes the palette as a [background, foreground, highlight] list
func (p Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{p.Background, p.Foreground, p.Highlight})
}

// UnmarshalJSON reads a three colour list
func (p *Palette) UnmarshalJSON(data []byte) error {
	var in []string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in) != 3 {
		return fmt.Errorf("palette has %d colours, expected 3", len(in))
	}
	p.Background, p.Foreground, p.Highlight = in[0], in[1], in[2]
	return nil
}
