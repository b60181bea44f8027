package scene

import (
	"time"
)

// FrameInterval is how long each animation step is shown for
const FrameInterval = 400 * time.Millisecond

// FrameMap maps tile ID -> frame index (in the tileset) to draw
type FrameMap map[int]int

// Resolve returns which frame of each tile to draw at the given animation
// step.
// Tiles without a frame for `step` show their first frame; we do not wrap
// around with a modulo, so tiles with short animations hold on frame 0 until
// the step counter comes back around.
// Tiles with no frames at all are left out.
func Resolve(tiles []*Tile, step int) FrameMap {
	frames := make(FrameMap, len(tiles))
	for _, t := range tiles {
		if len(t.Frames) == 0 {
			continue
		}
		if step >= 0 && step < len(t.Frames) {
			frames[t.ID] = t.Frames[step]
		} else {
			frames[t.ID] = t.Frames[0]
		}
	}
	return frames
}

// CycleLength returns the length of the longest animation (at least 1).
func CycleLength(tiles []*Tile) int {
	longest := 1
	for _, t := range tiles {
		if len(t.Frames) > longest {
			longest = len(t.Frames)
		}
	}
	return longest
}

// StepAt returns the animation step after `elapsed` time, given `interval`
// per step (FrameInterval if <= 0).
func StepAt(elapsed, interval time.Duration) int {
	if interval <= 0 {
		interval = FrameInterval
	}
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / interval)
}
