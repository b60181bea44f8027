package scene

// GetByID returns the first item with the given id
func GetByID[T Identified](items []T, id int) (T, bool) {
	for _, i := range items {
		if i.GetID() == id {
			return i, true
		}
	}
	var zero T
	return zero, false
}

// RoomByID returns the room with the given id (or nil)
func (p *Project) RoomByID(id int) *Room {
	r, _ := GetByID(p.Rooms, id)
	return r
}

// TileByID returns the tile with the given id (or nil)
func (p *Project) TileByID(id int) *Tile {
	t, _ := GetByID(p.Tiles, id)
	return t
}

// EventByID returns the event with the given id from any room (or nil)
func (p *Project) EventByID(id int) *Event {
	e, _ := GetByID(p.AllEvents(), id)
	return e
}

// RoomOfEvent returns the room holding the given event id (or nil)
func (p *Project) RoomOfEvent(id int) *Room {
	for _, r := range p.Rooms {
		if _, ok := GetByID(r.Events, id); ok {
			return r
		}
	}
	return nil
}

// EventsAt returns all events at (x,y) other than `ignore` (which may be nil).
func EventsAt(events []*Event, x, y int, ignore *Event) []*Event {
	found := []*Event{}
	for _, e := range events {
		if e == ignore {
			continue
		}
		if e.Position.X == x && e.Position.Y == y {
			found = append(found, e)
		}
	}
	return found
}

// FindFreeFrame returns the lowest frame index not used by any tile.
// Gaps are filled first, otherwise this is one past the highest used frame.
// With no frames in use at all the answer is 0.
func FindFreeFrame(tiles []*Tile) int {
	used := map[int]bool{}
	highest := -1
	for _, t := range tiles {
		for _, f := range t.Frames {
			used[f] = true
			if f > highest {
				highest = f
			}
		}
	}

	for i := 0; i < highest; i++ {
		if !used[i] {
			return i
		}
	}
	return highest + 1
}
