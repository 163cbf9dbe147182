package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection over the play area.
// Objects are inserted by position and index, then nearby objects can be queried
// in O(1) per cell via a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood. Positions outside the area are clamped to the edge
// cells, so objects drifting past the border are still found.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given area.
// cellSize should be >= the maximum collision distance for the objects being inserted.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
	}
	g.Resize(width, height)
	return g
}

// Resize changes the covered area. Existing items are dropped.
func (g *SpatialGrid) Resize(width, height float64) {
	cols := int(math.Ceil(width * g.invCellSize))
	rows := int(math.Ceil(height * g.invCellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == g.cols && rows == g.rows {
		g.Clear()
		return
	}
	g.cols = cols
	g.rows = rows
	g.cells = make([]gridCell, cols*rows)
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(p Vector2, index int) {
	col, row := g.posToCell(p.X, p.Y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. Each index is reported at most once.
// If fn returns true, iteration stops early (useful for "find first" queries).
func (g *SpatialGrid) QueryAround(p Vector2, fn func(index int) bool) {
	col, row := g.posToCell(p.X, p.Y)

	var colBuf, rowBuf [3]int
	cols := neighbors(col, g.cols, colBuf[:0])
	rows := neighbors(row, g.rows, rowBuf[:0])

	for _, r := range rows {
		rowOffset := r * g.cols
		for _, c := range cols {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// neighbors returns the distinct in-range indices around i.
func neighbors(i, n int, buf []int) []int {
	for d := -1; d <= 1; d++ {
		j := i + d
		if j < 0 || j >= n {
			continue
		}
		buf = append(buf, j)
	}
	return buf
}

// posToCell converts coordinates to grid cell coordinates.
// Clamps to valid range to handle positions past the border.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
