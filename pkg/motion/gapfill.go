package motion

// fillPasses bounds the gap-filling relaxation. Two passes let cells
// filled by the first pass unblock their neighbours in the second;
// downstream consumers depend on the exact output of this depth so the
// count is fixed rather than configurable.
const fillPasses = 2

// FillGaps interpolates unoccupied interior cells from their immediate
// neighbours. A cell with both horizontal neighbours occupied takes
// their truncated average; failing that, both vertical neighbours are
// tried. Border cells lack two-sided neighbours and are never filled.
// Cells still vacant after the final pass stay zero.
//
// Only worth calling at FineGridStep: the coarse grid undersamples too
// heavily for neighbour interpolation to be trustworthy.
func (g *Grid) FillGaps() {
	for k := 0; k < fillPasses; k++ {
		for i := 1; i < g.shape.Rows-1; i++ {
			for j := 1; j < g.shape.Cols-1; j++ {
				if g.Occupancy(i, j) != CellVacant {
					continue
				}
				if g.Occupancy(i, j-1) != CellVacant && g.Occupancy(i, j+1) != CellVacant {
					g.setCell(i, j,
						(g.Dx(i, j-1)+g.Dx(i, j+1))/2,
						(g.Dy(i, j-1)+g.Dy(i, j+1))/2,
						CellFromFill)
				} else if g.Occupancy(i-1, j) != CellVacant && g.Occupancy(i+1, j) != CellVacant {
					g.setCell(i, j,
						(g.Dx(i-1, j)+g.Dx(i+1, j))/2,
						(g.Dy(i-1, j)+g.Dy(i+1, j))/2,
						CellFromFill)
				}
			}
		}
	}
}
