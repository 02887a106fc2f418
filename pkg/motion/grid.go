package motion

// MaxGridSize caps each grid dimension. Frames larger than
// MaxGridSize*step pixels in either direction are silently truncated
// to keep the output shape bounded.
const MaxGridSize = 512

// Supported rasterization step sizes in pixels per cell.
const (
	FineGridStep   = 8
	CoarseGridStep = 16
)

// Occupancy markers per cell.
const (
	CellVacant     uint8 = 0
	CellFromVector uint8 = 1
	CellFromFill   uint8 = 2
)

type Shape struct {
	Rows, Cols int
}

// ShapeFor derives the grid shape for a frame of the given pixel
// dimensions at the given step, applying the MaxGridSize cap.
func ShapeFor(frameW, frameH, step int) Shape {
	rows := frameH / step
	if rows > MaxGridSize {
		rows = MaxGridSize
	}
	cols := frameW / step
	if cols > MaxGridSize {
		cols = MaxGridSize
	}
	return Shape{Rows: rows, Cols: cols}
}

// Grid is a dense fixed-step matrix of per-cell displacements with an
// occupancy marker recording how each cell got its value. Cells are
// addressed row-major and the backing buffers are sized exactly to the
// shape at construction.
type Grid struct {
	step      int
	shape     Shape
	dx        []int
	dy        []int
	occupancy []uint8
}

func NewGrid(step int, shape Shape) *Grid {
	n := shape.Rows * shape.Cols
	return &Grid{
		step:      step,
		shape:     shape,
		dx:        make([]int, n),
		dy:        make([]int, n),
		occupancy: make([]uint8, n),
	}
}

func (g *Grid) Step() int { return g.step }

func (g *Grid) Shape() Shape { return g.shape }

func (g *Grid) Dx(i, j int) int { return g.dx[i*g.shape.Cols+j] }

func (g *Grid) Dy(i, j int) int { return g.dy[i*g.shape.Cols+j] }

func (g *Grid) Occupancy(i, j int) uint8 { return g.occupancy[i*g.shape.Cols+j] }

func (g *Grid) setCell(i, j, dx, dy int, occ uint8) {
	n := i*g.shape.Cols + j
	g.dx[n] = dx
	g.dy[n] = dy
	g.occupancy[n] = occ
}

// AverageOf overwrites every cell displacement with the cell-wise
// average of a and b, truncating towards zero. Occupancy markers are
// left untouched: an averaged cell is not an observed one.
func (g *Grid) AverageOf(a, b *Grid) {
	for n := range g.dx {
		g.dx[n] = (a.dx[n] + b.dx[n]) / 2
		g.dy[n] = (a.dy[n] + b.dy[n]) / 2
	}
}
