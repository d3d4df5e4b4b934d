package workspace

import "math"

// Grid is the column/row arrangement of on-screen tiles.
type Grid struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Cells is the number of slots in the grid, including empty trailing ones.
func (g Grid) Cells() int {
	return g.Columns * g.Rows
}

// ResolveGrid maps a tile count to its grid. Up to four tiles use fixed
// shapes (one row for 1-3, 2x2 for 4); from five on the grid is the smallest
// square-ish arrangement. ok is false for zero tiles, where an empty-state
// placeholder is shown instead.
func ResolveGrid(count int) (grid Grid, ok bool) {
	switch {
	case count <= 0:
		return Grid{}, false
	case count <= 3:
		return Grid{Columns: count, Rows: 1}, true
	case count == 4:
		return Grid{Columns: 2, Rows: 2}, true
	}
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	return Grid{Columns: cols, Rows: rows}, true
}

// Position returns the column and row of the tile at index in g.
func (g Grid) Position(index int) (col, row int) {
	if g.Columns <= 0 {
		return 0, 0
	}
	return index % g.Columns, index / g.Columns
}
