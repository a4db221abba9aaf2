package texcat

import (
	"os"
	"os/exec"
	"strings"
	"sync"
)

var tmuxPassthroughOnce sync.Once

// inTmux reports whether stdout is mediated by tmux (or screen posing as
// tmux), in which case graphics escape sequences must be wrapped.
func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// enableTmuxPassthrough asks tmux to let APC sequences through to the
// outer terminal. Best effort; without it image frames are swallowed.
func enableTmuxPassthrough() {
	tmuxPassthroughOnce.Do(func() {
		// -p scopes the option to the current pane.
		cmd := exec.Command("tmux", "set", "-p", "allow-passthrough", "on")
		cmd.Stdin = nil
		cmd.Stdout = nil
		cmd.Stderr = nil
		_ = cmd.Run()
	})
}

// wrapTmuxPassthrough wraps a graphics frame in the tmux passthrough
// envelope. Every ESC inside the sequence must be doubled.
func wrapTmuxPassthrough(frame string) string {
	if !strings.HasPrefix(frame, "\x1b") {
		return frame
	}
	return "\x1bPtmux;\x1b" + strings.ReplaceAll(frame, "\x1b", "\x1b\x1b") + "\x1b\\"
}
