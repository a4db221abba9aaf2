//go:build !windows

package texcat

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DetectGeometry queries the terminal attached to stdout for its cell and
// grid dimensions. Detection never fails: any value the terminal will not
// report falls back to the documented default, because rendering must keep
// working (degraded) when piped or redirected.
func DetectGeometry() Geometry {
	g := DefaultGeometry()

	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return g
	}
	if ws.Col > 0 && ws.Row > 0 {
		g.Cols = int(ws.Col)
		g.Rows = int(ws.Row)
		if ws.Xpixel > 0 && ws.Ypixel > 0 {
			g.CellWidth = float64(ws.Xpixel) / float64(ws.Col)
			g.CellHeight = float64(ws.Ypixel) / float64(ws.Row)
			return g
		}
	}

	// The ioctl reported no pixel sizes (common under multiplexers); ask
	// the terminal itself with a CSI 16t cell-size query.
	if w, h, ok := queryCellSizeInPixels(); ok {
		g.CellWidth = float64(w)
		g.CellHeight = float64(h)
	}
	return g
}

// queryCellSizeInPixels sends CSI 16t to the controlling terminal and
// parses the "\x1b[6;<height>;<width>t" reply.
func queryCellSizeInPixels() (width, height int, ok bool) {
	query := "\x1b[16t"
	if inTmux() {
		query = wrapTmuxPassthrough(query)
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, false
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(query); err != nil {
		return 0, 0, false
	}

	responseChan := make(chan [2]int, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err == nil && n > 0 {
			response := string(buf[:n])
			if idx := strings.Index(response, "[6;"); idx >= 0 {
				parts := strings.Split(response[idx+3:], ";")
				if len(parts) >= 2 {
					var w, h int
					fmt.Sscanf(parts[0], "%d", &h)
					fmt.Sscanf(parts[1], "%dt", &w)
					responseChan <- [2]int{w, h}
					return
				}
			}
		}
		responseChan <- [2]int{0, 0}
	}()

	select {
	case result := <-responseChan:
		return result[0], result[1], result[0] > 0 && result[1] > 0
	case <-time.After(100 * time.Millisecond):
		return 0, 0, false
	}
}
