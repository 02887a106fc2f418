package motion

// Vector is a single decoder-reported motion vector: the displacement
// of a block from its position in a reference frame (src) to its
// position in the current frame (dst).
type Vector struct {
	SrcX, SrcY int
	DstX, DstY int
}

func (v Vector) Dx() int { return v.DstX - v.SrcX }

func (v Vector) Dy() int { return v.DstY - v.SrcY }

// ZeroDisplacement reports whether the vector describes no movement at all.
func (v Vector) ZeroDisplacement() bool {
	return v.Dx() == 0 && v.Dy() == 0
}
