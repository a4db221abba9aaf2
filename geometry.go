package texcat

// Geometry describes the terminal grid: the pixel dimensions of one
// character cell and the grid size in cells. All image placement math is
// ultimately expressed in these units.
type Geometry struct {
	CellWidth  float64 // pixels per cell, horizontal
	CellHeight float64 // pixels per cell, vertical
	Cols       int
	Rows       int
}

// Defaults used when the terminal cannot be queried, e.g. when output is
// piped or redirected. Rendering still works, just with generic geometry.
const (
	DefaultCellWidth  = 10
	DefaultCellHeight = 20
	DefaultCols       = 80
	DefaultRows       = 24
)

// DefaultGeometry returns the documented fallback geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		Cols:       DefaultCols,
		Rows:       DefaultRows,
	}
}

// PixelWidth is the full text area width in pixels.
func (g Geometry) PixelWidth() float64 {
	return float64(g.Cols) * g.CellWidth
}
