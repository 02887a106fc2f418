package motion_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/motiongrid/pkg/motion"
)

// vectorInto builds a vector whose destination lands in cell (i, j) of
// a step 8 grid with the given displacement.
func vectorInto(i, j, dx, dy int) motion.Vector {
	return motion.Vector{
		SrcX: j*8 - dx, SrcY: i*8 - dy,
		DstX: j * 8, DstY: i * 8,
	}
}

func TestFillGapsAveragesHorizontalNeighbours(t *testing.T) {
	is := is.New(t)

	grid := motion.Rasterize(8, motion.Shape{Rows: 3, Cols: 3}, []motion.Vector{
		vectorInto(1, 0, 3, -3),
		vectorInto(1, 2, 4, -4),
	})
	grid.FillGaps()

	is.Equal(grid.Dx(1, 1), 3)  // (3+4)/2 truncates
	is.Equal(grid.Dy(1, 1), -3) // (-3 + -4)/2 truncates towards zero
	is.Equal(grid.Occupancy(1, 1), motion.CellFromFill)
}

func TestFillGapsPrefersHorizontalOverVerticalNeighbours(t *testing.T) {
	is := is.New(t)

	grid := motion.Rasterize(8, motion.Shape{Rows: 3, Cols: 3}, []motion.Vector{
		vectorInto(1, 0, 2, 2),
		vectorInto(1, 2, 2, 2),
		vectorInto(0, 1, 10, 10),
		vectorInto(2, 1, 10, 10),
	})
	grid.FillGaps()

	is.Equal(grid.Dx(1, 1), 2)
	is.Equal(grid.Dy(1, 1), 2)
}

func TestFillGapsNeverTouchesBorderCells(t *testing.T) {
	is := is.New(t)

	grid := motion.Rasterize(8, motion.Shape{Rows: 3, Cols: 3}, []motion.Vector{
		vectorInto(0, 0, 5, 5),
		vectorInto(2, 0, 5, 5),
		vectorInto(0, 2, 5, 5),
		vectorInto(2, 2, 5, 5),
	})
	grid.FillGaps()

	is.Equal(grid.Occupancy(0, 1), motion.CellVacant)
	is.Equal(grid.Occupancy(1, 0), motion.CellVacant)
	is.Equal(grid.Occupancy(2, 1), motion.CellVacant)
	is.Equal(grid.Occupancy(1, 2), motion.CellVacant)
}

func TestFillGapsSecondPassCascadesFromFilledCells(t *testing.T) {
	grid := motion.Rasterize(8, motion.Shape{Rows: 5, Cols: 5}, []motion.Vector{
		vectorInto(2, 3, 4, 4),
		vectorInto(4, 3, 8, 8),
		vectorInto(3, 1, 2, 2),
	})
	grid.FillGaps()

	// (3,3) fills on the first pass from its vertical neighbours, which
	// unblocks (3,2) horizontally on the second
	require.Equal(t, motion.CellFromFill, grid.Occupancy(3, 3))
	require.Equal(t, 6, grid.Dx(3, 3))
	require.Equal(t, motion.CellFromFill, grid.Occupancy(3, 2))
	require.Equal(t, 4, grid.Dx(3, 2))
}

func TestFillGapsReachesFixpointWithinTwoPasses(t *testing.T) {
	is := is.New(t)

	rasterize := func() *motion.Grid {
		return motion.Rasterize(8, motion.Shape{Rows: 5, Cols: 5}, []motion.Vector{
			vectorInto(2, 3, 4, 4),
			vectorInto(4, 3, 8, 8),
			vectorInto(3, 1, 2, 2),
		})
	}

	once := rasterize()
	once.FillGaps()

	twice := rasterize()
	twice.FillGaps()
	twice.FillGaps()

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			is.Equal(once.Dx(i, j), twice.Dx(i, j))
			is.Equal(once.Dy(i, j), twice.Dy(i, j))
			is.Equal(once.Occupancy(i, j), twice.Occupancy(i, j))
		}
	}
}
