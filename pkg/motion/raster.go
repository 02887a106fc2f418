package motion

// Rasterize maps an unordered list of sparse motion vectors onto a
// grid of the given step and shape. Each vector lands in the cell its
// destination point falls into, clamped into the grid bounds since
// destinations commonly sit exactly on frame borders. When several
// vectors map to the same cell the last write wins.
func Rasterize(step int, shape Shape, vectors []Vector) *Grid {
	grid := NewGrid(step, shape)
	for _, v := range vectors {
		i := clamp(v.DstY/step, 0, shape.Rows-1)
		j := clamp(v.DstX/step, 0, shape.Cols-1)
		grid.setCell(i, j, v.Dx(), v.Dy(), CellFromVector)
	}
	return grid
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
