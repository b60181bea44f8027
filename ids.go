package scene

// Identified is anything with an integer id.
// A nil item should report 0.
type Identified interface {
	GetID() int
}

func (r *Room) GetID() int {
	if r == nil {
		return 0
	}
	return r.ID
}

func (t *Tile) GetID() int {
	if t == nil {
		return 0
	}
	return t.ID
}

func (e *Event) GetID() int {
	if e == nil {
		return 0
	}
	return e.ID
}

// NextID returns an id one higher than any id in `items` (minimum 1).
// This is only unique for the items given & only until something else is
// added, so allocate right before inserting.
func NextID[T Identified](items []T) int {
	highest := 0
	for _, i := range items {
		if id := i.GetID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// NextRoomID returns a free room id
func (p *Project) NextRoomID() int {
	return NextID(p.Rooms)
}

// NextTileID returns a free tile id
func (p *Project) NextTileID() int {
	return NextID(p.Tiles)
}

// NextEventID returns a free event id. Event ids are project wide so we
// consider the events of every room.
func (p *Project) NextEventID() int {
	return NextID(p.AllEvents())
}
