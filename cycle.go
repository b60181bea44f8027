package scene

import (
	"fmt"
)

// wrap returns d mod RoomSize in [0, RoomSize)
func wrap(d int) int {
	d %= RoomSize
	if d < 0 {
		d += RoomSize
	}
	return d
}

// CycleMap shifts the contents of the grid by (-dx, -dy) in place, wrapping
// around at the edges: the first dy rows move to the bottom & the first dx
// columns of every row move to the right hand side.
//
// Panics if the grid is not RoomSize x RoomSize.
func CycleMap(grid Grid, dx, dy int) {
	if !grid.valid() {
		panic(fmt.Sprintf("cannot cycle grid: expected %dx%d", RoomSize, RoomSize))
	}

	x, y := wrap(dx), wrap(dy)

	rotate(grid, y)
	for _, row := range grid {
		rotate(row, x)
	}
}

// rotate moves the first n items to the end of s
func rotate[T any](s []T, n int) {
	if n == 0 {
		return
	}
	head := make([]T, n)
	copy(head, s[:n])
	copy(s, s[n:])
	copy(s[len(s)-n:], head)
}

// CycleEvents moves every event by (dx, dy), wrapping around the room edges.
func CycleEvents(events []*Event, dx, dy int) {
	for _, e := range events {
		e.Position.X = wrap(e.Position.X + dx)
		e.Position.Y = wrap(e.Position.Y + dy)
	}
}

// Cycle applies CycleMap to all of the room grids and moves the events by
// (-dx, -dy) so they stay on the same tiles.
func (r *Room) Cycle(dx, dy int) {
	grids := []Grid{r.Tilemap, r.Backmap, r.Foremap, r.Wallmap}
	for _, g := range grids {
		if !g.valid() {
			panic(fmt.Sprintf("cannot cycle room %d: grids must be %dx%d", r.ID, RoomSize, RoomSize))
		}
	}
	for _, g := range grids {
		CycleMap(g, dx, dy)
	}
	CycleEvents(r.Events, -dx, -dy)
}
