package gamemath

// PixelToCell converts a pixel coordinate to the grid cell containing it.
// Division floors, so negative pixels land in negative (out of bounds) cells.
func PixelToCell(px, py, tileSize int) (col, row int) {
	return floorDiv(px, tileSize), floorDiv(py, tileSize)
}

// CellToPixel returns the top-left pixel of a grid cell.
func CellToPixel(col, row, tileSize int) (x, y float64) {
	return float64(col * tileSize), float64(row * tileSize)
}

// CellInBounds reports whether (col, row) lies inside a width x height grid.
func CellInBounds(col, row, width, height int) bool {
	return col >= 0 && row >= 0 && col < width && row < height
}

// CellIndex returns the row-major index of a cell in a grid of the given width.
func CellIndex(col, row, width int) int {
	return row*width + col
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
