package texcat

import (
	"fmt"
	"io"
)

// The layout engine describes output as a list of ops drawn from a small
// closed set rather than concatenating escape strings inline. Sequencing
// bugs then show up in tests as wrong op lists, without a terminal in the
// loop.
type opKind int

const (
	opText     opKind = iota // write literal text
	opFrames                 // write graphics frames verbatim
	opNewline                // n newlines
	opMoveUp                 // cursor up n rows
	opMoveDown               // cursor down n rows
	opMoveLeft               // cursor left n columns
	opMoveRight              // cursor right n columns
	opSave                   // save cursor position (DECSC)
	opRestore                // restore cursor position (DECRC)
	opCarriage                // return to column 0
)

type op struct {
	kind   opKind
	n      int
	text   string
	frames []string
}

// Writer plays op lists back against the output stream. It is the only
// component that touches the stream, always from the single render path,
// so it needs no locking.
type Writer struct {
	out         io.Writer
	passthrough bool
}

// NewWriter wraps out. When running under tmux, graphics frames are
// wrapped in the passthrough envelope and passthrough is enabled on the
// current pane.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{out: out, passthrough: inTmux()}
	if w.passthrough {
		enableTmuxPassthrough()
	}
	return w
}

func (w *Writer) play(ops []op) error {
	for _, o := range ops {
		if err := w.playOne(o); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) playOne(o op) error {
	switch o.kind {
	case opText:
		_, err := io.WriteString(w.out, o.text)
		return err
	case opFrames:
		for _, frame := range o.frames {
			if w.passthrough {
				frame = wrapTmuxPassthrough(frame)
			}
			if _, err := io.WriteString(w.out, frame); err != nil {
				return err
			}
		}
		return nil
	case opNewline:
		for i := 0; i < o.n; i++ {
			if _, err := io.WriteString(w.out, "\n"); err != nil {
				return err
			}
		}
		return nil
	case opMoveUp:
		return w.csi(o.n, 'A')
	case opMoveDown:
		return w.csi(o.n, 'B')
	case opMoveRight:
		return w.csi(o.n, 'C')
	case opMoveLeft:
		return w.csi(o.n, 'D')
	case opSave:
		_, err := io.WriteString(w.out, "\x1b7")
		return err
	case opRestore:
		_, err := io.WriteString(w.out, "\x1b8")
		return err
	case opCarriage:
		_, err := io.WriteString(w.out, "\r")
		return err
	default:
		return fmt.Errorf("unknown op kind %d", o.kind)
	}
}

func (w *Writer) csi(n int, final byte) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(w.out, "\x1b[%d%c", n, final)
	return err
}
