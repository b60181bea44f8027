package scene

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRoom builds the JSON for a room with a single tile at (1,0)
func sampleRoom() string {
	rows := make([]string, RoomSize)
	zero := "[" + strings.TrimSuffix(strings.Repeat("0,", RoomSize), ",") + "]"
	for i := range rows {
		rows[i] = zero
	}
	empty := "[" + strings.Join(rows, ",") + "]"

	rows[0] = "[0,1" + strings.Repeat(",0", RoomSize-2) + "]"
	tiles := "[" + strings.Join(rows, ",") + "]"

	return `{
		"id": 1,
		"palette": 0,
		"tilemap": ` + tiles + `,
		"backmap": ` + empty + `,
		"foremap": ` + tiles + `,
		"wallmap": ` + empty + `,
		"events": [
			{
				"id": 3,
				"position": [4, 5],
				"fields": [
					{"key": "graphic", "type": "tile", "data": 1},
					{"key": "music", "type": "file", "data": "song.ogg"},
					{"key": "solid", "type": "tag", "data": true},
					{"key": "say", "type": "dialogue", "data": {"lines": ["hello", "bye"]}},
					{"key": "note", "type": "text", "data": 12}
				]
			}
		]
	}`
}

func sampleProject() string {
	return `{
		"rooms": [` + sampleRoom() + `],
		"palettes": [["#000000", "#ffffff", "#ff00ff"]],
		"tileset": "tileset.png",
		"tiles": [{"id": 1, "frames": [0, 1]}]
	}`
}

func TestDecode(t *testing.T) {
	p, err := Decode(bytes.NewBufferString(sampleProject()))

	require.Nil(t, err)
	assert.Equal(t, "tileset.png", p.Tileset)
	assert.Equal(t, []Palette{{Background: "#000000", Foreground: "#ffffff", Highlight: "#ff00ff"}}, p.Palettes)
	assert.Equal(t, []*Tile{{ID: 1, Frames: []int{0, 1}}}, p.Tiles)

	require.Equal(t, 1, len(p.Rooms))
	r := p.Rooms[0]
	assert.Equal(t, 1, r.Tilemap[0][1])
	assert.Equal(t, 1, r.Foremap[0][1])
	assert.Equal(t, 0, r.Tilemap[1][1])

	require.Equal(t, 1, len(r.Events))
	e := r.Events[0]
	assert.Equal(t, Point{X: 4, Y: 5}, e.Position)
	assert.Equal(t, TileValue(1), e.Fields[0].Value)
	assert.Equal(t, FileValue("song.ogg"), e.Fields[1].Value)
	assert.Equal(t, TagValue(true), e.Fields[2].Value)
	assert.JSONEq(t, `{"lines": ["hello", "bye"]}`, string(e.Fields[3].Value.(RawValue)))
	assert.Equal(t, RawValue("12"), e.Fields[4].Value) // text field that isn't text

	assert.True(t, e.IsTagged("solid"))
	assert.Equal(t, []string{"tileset.png", "song.ogg"}, Manifest(p))
}

func TestEncode(t *testing.T) {
	p, err := Decode(bytes.NewBufferString(sampleProject()))
	require.Nil(t, err)

	buf := bytes.Buffer{}
	err = p.Encode(&buf)
	require.Nil(t, err)

	// field names & shapes are what other tools read
	assert.JSONEq(t, sampleProject(), buf.String())
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"rooms": [`,
		"bad palette":     strings.Replace(sampleProject(), `"#ff00ff"`, `"#ff00ff", "#000000"`, 1),
		"missing palette": strings.Replace(sampleProject(), `"palette": 0`, `"palette": 1`, 1),
		"unknown tile":    strings.Replace(sampleProject(), `"frames": [0, 1]`, `"frames": []`, 1),
		"null tile":       strings.Replace(sampleProject(), `"tiles": [`, `"tiles": [null, `, 1),
		"null room":       strings.Replace(sampleProject(), `"rooms": [`, `"rooms": [null, `, 1),
		"null event":      strings.Replace(sampleProject(), `"events": [`, `"events": [null, `, 1),
		"null field":      strings.Replace(sampleProject(), `"fields": [`, `"fields": [null, `, 1),
		"null palette":    strings.Replace(sampleProject(), `"palettes": [`, `"palettes": [null, `, 1),
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := Decode(bytes.NewBufferString(doc))
				assert.NotNil(t, err)
			})
		})
	}
}

func TestWriteFileOpen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "project.json")

	p := testProject()
	require.Nil(t, p.WriteFile(fname))

	info, err := os.Stat(fname)
	require.Nil(t, err)
	assert.True(t, info.Size() > 0)

	loaded, err := Open(fname)
	require.Nil(t, err)
	assert.Equal(t, p, loaded)
}

func TestEncodeNilValue(t *testing.T) {
	p := New("")
	p.Rooms[0].Events = []*Event{{ID: 1, Fields: []Field{{Key: "x", Type: "mystery"}}}}

	buf := bytes.Buffer{}
	require.Nil(t, p.Encode(&buf))

	doc := map[string]interface{}{}
	require.Nil(t, json.Unmarshal(buf.Bytes(), &doc))
	field := doc["rooms"].([]interface{})[0].(map[string]interface{})["events"].([]interface{})[0].(map[string]interface{})["fields"].([]interface{})[0]
	assert.Equal(t, map[string]interface{}{"key": "x", "type": "mystery", "data": nil}, field)
}
