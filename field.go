package scene

import (
	"encoding/json"
)

const (
	// Field types we understand.
	// Anything else is carried around as a RawValue.
	FieldFile = "file"
	FieldTile = "tile"
	FieldText = "text"
	FieldTag  = "tag"

	// well known field keys
	KeyGraphic     = "graphic"
	TagTransparent = "transparent"
)

// FieldValue is the payload of a field. The concrete type depends on the
// field's Type, see FileValue, TileValue, TextValue, TagValue & RawValue.
type FieldValue interface {
	fieldValue()
}

// FileValue is a resource identifier (file name, data URI ..)
type FileValue string

// TileValue is a tile ID
type TileValue int

// TextValue is plain text
type TextValue string

// TagValue marks an event (normally always true)
type TagValue bool

// RawValue is data of a type we don't interpret.
// We keep the JSON as is so it can be written back out unchanged.
type RawValue json.RawMessage

func (FileValue) fieldValue() {}
func (TileValue) fieldValue() {}
func (TextValue) fieldValue() {}
func (TagValue) fieldValue()  {}
func (RawValue) fieldValue()  {}

// Field is a single key / type / value triple on an event.
// Keys need not be unique.
type Field struct {
	Key   string
	Type  string
	Value FieldValue
}

// File returns a "file" field
func File(key, resource string) Field {
	return Field{Key: key, Type: FieldFile, Value: FileValue(resource)}
}

// TileField returns a "tile" field pointing at the given tile id
func TileField(key string, tileID int) Field {
	return Field{Key: key, Type: FieldTile, Value: TileValue(tileID)}
}

// Text returns a "text" field
func Text(key, text string) Field {
	return Field{Key: key, Type: FieldText, Value: TextValue(text)}
}

// Tag returns a "tag" field marking the event with `name`
func Tag(name string) Field {
	return Field{Key: name, Type: FieldTag, Value: TagValue(true)}
}

// Field returns the first field matching key & type (or nil).
func (e *Event) Field(key, typ string) *Field {
	for i := range e.Fields {
		if e.Fields[i].Key == key && e.Fields[i].Type == typ {
			return &e.Fields[i]
		}
	}
	return nil
}

// IsTagged returns if the event has a tag field called `tag`
func (e *Event) IsTagged(tag string) bool {
	return e.Field(tag, FieldTag) != nil
}

// Graphic returns the tile ID this event is drawn with and whether the
// event has a graphic field at all. A graphic field whose data isn't a tile
// ID gives ID 0 (the empty tile), which is drawn with frame 0.
func (e *Event) Graphic() (int, bool) {
	f := e.Field(KeyGraphic, FieldTile)
	if f == nil {
		return 0, false
	}
	v, _ := f.Value.(TileValue)
	return int(v), true
}

// decodeValue turns raw JSON data into a FieldValue given the field type.
// If the data doesn't match what the type should hold we fall back to
// RawValue rather than lose it.
func decodeValue(typ string, data json.RawMessage) FieldValue {
	var err error
	switch typ {
	case FieldFile:
		var s string
		if err = json.Unmarshal(data, &s); err == nil {
			return FileValue(s)
		}
	case FieldText:
		var s string
		if err = json.Unmarshal(data, &s); err == nil {
			return TextValue(s)
		}
	case FieldTile:
		var i int
		if err = json.Unmarshal(data, &i); err == nil {
			return TileValue(i)
		}
	case FieldTag:
		var b bool
		if err = json.Unmarshal(data, &b); err == nil {
			return TagValue(b)
		}
	}

	raw := make(RawValue, len(data))
	copy(raw, data)
	return raw
}

// encodeValue is the reverse of decodeValue
func encodeValue(v FieldValue) (json.RawMessage, error) {
	switch t := v.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case RawValue:
		if len(t) == 0 {
			return json.RawMessage("null"), nil
		}
		return json.RawMessage(t), nil
	default:
		return json.Marshal(t)
	}
}
