package flow

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/tauraamui/motiongrid/pkg/log"
	"github.com/tauraamui/motiongrid/pkg/motion"
	"github.com/tauraamui/motiongrid/pkg/video/videodec"
)

type PipelineSettings struct {
	Raw              bool
	FineGrid         bool
	IncludeOccupancy bool
	Out              io.Writer
}

// Pipeline pulls decoded frames one at a time and drives them through
// rasterization, gap filling and the temporal buffer, or straight to
// the raw emitter. Strictly sequential: the next frame is only
// requested once the current one has been fully handled.
type Pipeline struct {
	settings PipelineSettings
	buffer   *Buffer

	frameIndex int
	prevPts    int64
}

func NewPipeline(settings PipelineSettings) *Pipeline {
	return &Pipeline{
		settings: settings,
		buffer:   NewBuffer(NewEmitter(settings.Out, settings.IncludeOccupancy)),
		prevPts:  -1,
	}
}

func (p *Pipeline) step() int {
	if p.settings.FineGrid {
		return motion.FineGridStep
	}
	return motion.CoarseGridStep
}

// Run consumes the stream to its end. A drained stream flushes the
// buffer and returns nil; any decoder failure aborts without flushing,
// so nothing beyond already-emitted frames reaches the output.
func (p *Pipeline) Run(ctx context.Context, stream videodec.Stream) error {
	dims := stream.Dimensions()
	step := p.step()
	shape := motion.ShapeFor(dims.W, dims.H, step)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := stream.Next()
		if errors.Is(err, videodec.ErrStreamDrained) {
			break
		}
		if err != nil {
			return err
		}

		p.frameIndex++

		if frame.PTS <= p.prevPts && p.prevPts != -1 {
			log.Warn("Skipping frame %d (frame with pts %d already processed).", p.frameIndex, int(frame.PTS))
			continue
		}

		if err := p.handle(frame, step, shape); err != nil {
			return err
		}

		p.prevPts = frame.PTS
	}

	if p.settings.Raw {
		return nil
	}
	return p.buffer.Flush()
}

func (p *Pipeline) handle(frame videodec.Frame, step int, shape motion.Shape) error {
	if p.settings.Raw {
		return EmitRaw(p.settings.Out, p.frameIndex, frame.PTS, frame.PictType, frame.Vectors)
	}

	grid := motion.Rasterize(step, shape, frame.Vectors)
	if step == motion.FineGridStep {
		grid.FillGaps()
	}

	return p.buffer.Push(NewFrame(p.frameIndex, frame.PTS, frame.PictType, grid, len(frame.Vectors) == 0))
}
