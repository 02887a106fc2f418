package videodec

import (
	"context"
	"errors"

	"github.com/tauraamui/motiongrid/pkg/motion"
)

// ErrStreamDrained signals a normal end of stream from Next. Any other
// error from Next is a decoder failure and terminal for the stream.
var ErrStreamDrained = errors.New("stream drained")

var ErrNoVideoStream = errors.New("video stream not found")

type Dimensions struct {
	W, H int
}

// Frame is the per-frame contract the decoding side delivers: a
// presentation timestamp, a picture-type tag and the unordered motion
// vector list the codec exported for the frame. Frames arrive in
// decode order.
type Frame struct {
	PTS      int64
	PictType byte
	Vectors  []motion.Vector
}

// Stream is a lazy, finite, non-restartable sequence of decoded
// frames pulled from a single input.
type Stream interface {
	UUID() string
	Dimensions() Dimensions
	Next() (Frame, error)
	Close() error
}

type Backend interface {
	Open(context.Context, string) (Stream, error)
}

func Default() Backend {
	return FFmpegTools()
}

func FFmpegTools() Backend {
	return &ffmpegToolsBackend{}
}

func Mock() Backend {
	return &mockBackend{}
}

func Resolve(t string) Backend {
	switch t {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}
