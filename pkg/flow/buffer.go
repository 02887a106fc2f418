package flow

// interpolationWindow is the pending-frame count at which the buffer
// attempts temporal interpolation: exactly one gap frame bracketed by
// two carriers. Longer vectorless runs fall back to verbatim emission;
// the threshold is fixed for output compatibility.
const interpolationWindow = 2

// Buffer holds recently rasterized frames that could not be emitted
// immediately. Frames without any decoder vectors accumulate as
// candidate gaps until a later carrier frame decides whether they get
// synthesized content or go out zero-filled as-is.
type Buffer struct {
	emitter *Emitter
	pending []*Frame
}

func NewBuffer(emitter *Emitter) *Buffer {
	return &Buffer{emitter: emitter}
}

// Push hands a newly rasterized frame to the buffer and performs
// whatever emission the transition rules allow.
//
// A carrier frame (Empty == false) first resolves the pending queue:
// when exactly one non-empty anchor and one gap frame are pending, the
// gap's grid is replaced with the average of the anchor and the new
// carrier and emitted as interpolated; any other pending mix is
// emitted verbatim. The carrier itself is then emitted immediately. A
// gap frame only joins the queue. Every frame joins the queue either
// way — already-emitted frames are inert there, but a carrier must
// stay visible as the older anchor for the next interpolation window.
func (b *Buffer) Push(cur *Frame) error {
	if !cur.Empty {
		if len(b.pending) == interpolationWindow && !b.pending[0].Empty {
			b.pending[1].interpolateBetween(b.pending[0], cur)
			if err := b.emitter.Emit(b.pending[1]); err != nil {
				return err
			}
		} else {
			if err := b.emitPending(); err != nil {
				return err
			}
		}
		b.pending = b.pending[:0]
		if err := b.emitter.Emit(cur); err != nil {
			return err
		}
	}

	b.pending = append(b.pending, cur)
	return nil
}

// Flush emits whatever is still pending, in arrival order. The buffer
// is terminal afterwards; this is the end-of-stream transition.
func (b *Buffer) Flush() error {
	if err := b.emitPending(); err != nil {
		return err
	}
	b.pending = b.pending[:0]
	return nil
}

func (b *Buffer) emitPending() error {
	for _, f := range b.pending {
		if err := b.emitter.Emit(f); err != nil {
			return err
		}
	}
	return nil
}
