package grid

// CellSize returns the width of a single grid cell given the container
// width, the column count, and the gap between adjacent columns. The result
// is presentation-only: renderers use it to size cells, and it never feeds
// back into placement. A container that has not been measured yet
// (width <= 0) yields 0.
func CellSize(containerWidth, columns, gap int) float64 {
	if containerWidth <= 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	if gap < 0 {
		gap = 0
	}
	return float64(containerWidth-(columns-1)*gap) / float64(columns)
}

// SpanWidth returns the total width of span adjacent cells including the
// gaps between them, for renderers that work in integer units. Fractional
// cell widths are distributed so that the grid's rightmost edge stays within
// the container: column i spans from round(i*(cell+gap)) in continuous
// coordinates.
func SpanWidth(cellSize float64, span, gap int) int {
	if span < 1 || cellSize <= 0 {
		return 0
	}
	w := cellSize*float64(span) + float64(gap*(span-1))
	return int(w)
}
