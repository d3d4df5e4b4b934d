package launcher

import "math"

// PopupGrid returns the columns and rows used to tile count popups. Up to
// three popups sit side by side in one row; more use a square-ish grid.
// The on-screen tile grid is computed separately by workspace.ResolveGrid.
func PopupGrid(count int) (cols, rows int) {
	if count <= 0 {
		return 0, 0
	}
	if count <= 3 {
		return count, 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(count))))
	rows = (count + cols - 1) / cols
	return cols, rows
}

// Tile partitions area into equal cells for count windows and returns one
// rectangle per window, in order, filling rows left to right.
func Tile(count int, area Rect) []Rect {
	cols, rows := PopupGrid(count)
	if cols == 0 {
		return nil
	}
	w := area.Width / cols
	h := area.Height / rows

	tiles := make([]Rect, count)
	for i := range tiles {
		col := i % cols
		row := i / cols
		tiles[i] = Rect{
			X:      area.X + col*w,
			Y:      area.Y + row*h,
			Width:  w,
			Height: h,
		}
	}
	return tiles
}

// Center returns a size-by-size rectangle centered in area.
func Center(area Rect, width, height int) Rect {
	return Rect{
		X:      area.X + (area.Width-width)/2,
		Y:      area.Y + (area.Height-height)/2,
		Width:  width,
		Height: height,
	}
}
