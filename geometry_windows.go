//go:build windows

package texcat

import (
	"os"

	"golang.org/x/term"
)

// DetectGeometry returns the grid size when stdout is a console and the
// documented defaults otherwise. Windows consoles have no portable
// cell-size-in-pixels query, so cell dimensions stay at their defaults.
func DetectGeometry() Geometry {
	g := DefaultGeometry()
	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 && rows > 0 {
		g.Cols = cols
		g.Rows = rows
	}
	return g
}
