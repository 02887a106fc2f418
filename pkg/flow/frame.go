package flow

import "github.com/tauraamui/motiongrid/pkg/motion"

// Provenance labels for emitted frames.
const (
	OriginVideo        = "video"
	OriginInterpolated = "interpolated"
	OriginDummy        = "dummy"
)

// Frame is one rasterized frame awaiting emission. It is owned
// exclusively by the Buffer until emitted, after which it is discarded.
type Frame struct {
	Grid     *motion.Grid
	Pts      int64
	Index    int
	PictType byte
	Origin   string
	Empty    bool

	printed bool
}

// NewFrame wraps a freshly rasterized grid. empty records whether the
// decoder supplied any raw vectors at all, which is what the buffering
// policy keys off; a frame whose vectors all rasterized to zero still
// counts as carrying data.
func NewFrame(index int, pts int64, pictType byte, grid *motion.Grid, empty bool) *Frame {
	return &Frame{
		Grid:     grid,
		Pts:      pts,
		Index:    index,
		PictType: pictType,
		Origin:   OriginVideo,
		Empty:    empty,
	}
}

// Printed reports whether the frame has already been emitted.
func (f *Frame) Printed() bool { return f.printed }

// interpolateBetween replaces the frame's grid content with the
// cell-wise truncated average of its two temporal anchors and marks it
// as synthesized.
func (f *Frame) interpolateBetween(prev, next *Frame) {
	f.Grid.AverageOf(prev.Grid, next.Grid)
	f.Empty = false
	f.Origin = OriginInterpolated
}
