package flow

import (
	"fmt"
	"io"

	"github.com/tauraamui/motiongrid/pkg/motion"
)

// Emitter serializes rasterized frames to the line-oriented arranged
// protocol. Header timestamps are normalized against the first frame
// ever emitted; that anchor is captured once and never changes for the
// lifetime of the run.
type Emitter struct {
	out              io.Writer
	includeOccupancy bool
	firstPts         int64
	haveFirstPts     bool
}

func NewEmitter(out io.Writer, includeOccupancy bool) *Emitter {
	return &Emitter{out: out, includeOccupancy: includeOccupancy}
}

// Emit writes the frame's header and grids. A frame is emitted at most
// once; repeat calls are no-ops.
func (e *Emitter) Emit(f *Frame) error {
	if f.printed {
		return nil
	}

	if !e.haveFirstPts {
		e.firstPts = f.Pts
		e.haveFirstPts = true
	}

	shape := f.Grid.Shape()
	outputRows := 2 * shape.Rows
	if e.includeOccupancy {
		outputRows = 3 * shape.Rows
	}

	_, err := fmt.Fprintf(e.out, "# pts=%d frame_index=%d pict_type=%c output_type=arranged shape=%dx%d origin=%s\n",
		f.Pts-e.firstPts, f.Index, f.PictType, outputRows, shape.Cols, f.Origin)
	if err != nil {
		return err
	}

	if err := writeCells(e.out, shape, f.Grid.Dx); err != nil {
		return err
	}
	if err := writeCells(e.out, shape, f.Grid.Dy); err != nil {
		return err
	}
	if e.includeOccupancy {
		occ := func(i, j int) int { return int(f.Grid.Occupancy(i, j)) }
		if err := writeCells(e.out, shape, occ); err != nil {
			return err
		}
	}

	f.printed = true
	return nil
}

func writeCells(out io.Writer, shape motion.Shape, cell func(i, j int) int) error {
	for i := 0; i < shape.Rows; i++ {
		for j := 0; j < shape.Cols; j++ {
			if _, err := fmt.Fprintf(out, "%4d", cell(i, j)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}

// EmitRaw prints one frame's vectors without any rasterization or
// cross-frame state. The header's shape counts every vector the
// decoder reported, but zero-displacement vectors are left out of the
// body; consumers depend on exactly this asymmetry.
func EmitRaw(out io.Writer, index int, pts int64, pictType byte, vectors []motion.Vector) error {
	_, err := fmt.Fprintf(out, "# pts=%d frame_index=%d pict_type=%c output_type=raw shape=%dx4\n",
		pts, index, pictType, len(vectors))
	if err != nil {
		return err
	}

	for _, v := range vectors {
		if v.ZeroDisplacement() {
			continue
		}
		if _, err := fmt.Fprintf(out, "%d\t%d\t%d\t%d\n", v.DstX, v.DstY, v.Dx(), v.Dy()); err != nil {
			return err
		}
	}
	return nil
}
