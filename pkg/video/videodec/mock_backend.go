package videodec

import (
	"context"

	"github.com/google/uuid"
	"github.com/tauraamui/motiongrid/pkg/motion"
)

// mockBackend serves tests and development without any ffmpeg tooling
// installed. It synthesizes a short, deterministic GOP-like sequence:
// a keyframe without vectors, predicted frames carrying a uniform
// motion field, and one vectorless frame bracketed by two carriers.
type mockBackend struct{}

func (b *mockBackend) Open(ctx context.Context, path string) (Stream, error) {
	return &mockStream{}, nil
}

const (
	mockFrameWidth  = 96
	mockFrameHeight = 64
)

type mockFrameScript struct {
	pictType byte
	uniform  int // displacement applied to every block, 0 means no vectors
}

var mockScript = []mockFrameScript{
	{pictType: 'I'},
	{pictType: 'P', uniform: 4},
	{pictType: 'B'},
	{pictType: 'P', uniform: 8},
	{pictType: 'P', uniform: 2},
	{pictType: 'I'},
	{pictType: 'P', uniform: 6},
}

type mockStream struct {
	uuid   string
	cursor int
}

func (m *mockStream) UUID() string {
	if len(m.uuid) == 0 {
		m.uuid = uuid.NewString()
	}
	return m.uuid
}

func (m *mockStream) Dimensions() Dimensions {
	return Dimensions{W: mockFrameWidth, H: mockFrameHeight}
}

func (m *mockStream) Next() (Frame, error) {
	if m.cursor >= len(mockScript) {
		return Frame{}, ErrStreamDrained
	}

	script := mockScript[m.cursor]
	frame := Frame{
		PTS:      int64(m.cursor),
		PictType: script.pictType,
		Vectors:  uniformField(script.uniform),
	}
	m.cursor++
	return frame, nil
}

// uniformField lays one vector per 16px block across the whole mock
// frame, each displaced by d in both axes.
func uniformField(d int) []motion.Vector {
	if d == 0 {
		return nil
	}

	var field []motion.Vector
	for y := 8; y < mockFrameHeight; y += 16 {
		for x := 8; x < mockFrameWidth; x += 16 {
			field = append(field, motion.Vector{
				SrcX: x - d, SrcY: y - d,
				DstX: x, DstY: y,
			})
		}
	}
	return field
}

func (m *mockStream) Close() error { return nil }
