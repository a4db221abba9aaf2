package texcat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearTerminalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KITTY_WINDOW_ID", "TERM", "TERM_PROGRAM", "TMUX"} {
		t.Setenv(key, "")
	}
}

func TestKittySupportedEnvHints(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"kitty window id", "KITTY_WINDOW_ID", "1"},
		{"kitty term", "TERM", "xterm-kitty"},
		{"ghostty", "TERM_PROGRAM", "ghostty"},
		{"wezterm", "TERM_PROGRAM", "WezTerm"},
		{"rio", "TERM_PROGRAM", "rio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTerminalEnv(t)
			t.Setenv(tt.key, tt.value)
			assert.True(t, KittySupported())
		})
	}
}

func TestKittySupportedTmuxWithoutHints(t *testing.T) {
	clearTerminalEnv(t)
	t.Setenv("TMUX", "/tmp/tmux-1000/default,12345,0")
	assert.False(t, KittySupported())
}

func TestInTmux(t *testing.T) {
	clearTerminalEnv(t)
	assert.False(t, inTmux())

	t.Setenv("TMUX", "/tmp/tmux-1000/default,12345,0")
	assert.True(t, inTmux())
}
