package texcat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPlay(t *testing.T) {
	tests := []struct {
		name string
		ops  []op
		want string
	}{
		{"text", []op{{kind: opText, text: "hi"}}, "hi"},
		{"newlines", []op{{kind: opNewline, n: 3}}, "\n\n\n"},
		{"zero newlines", []op{{kind: opNewline, n: 0}}, ""},
		{"move up", []op{{kind: opMoveUp, n: 2}}, "\x1b[2A"},
		{"move down", []op{{kind: opMoveDown, n: 1}}, "\x1b[1B"},
		{"move right", []op{{kind: opMoveRight, n: 4}}, "\x1b[4C"},
		{"move left", []op{{kind: opMoveLeft, n: 4}}, "\x1b[4D"},
		{"zero move is nothing", []op{{kind: opMoveUp, n: 0}}, ""},
		{"save restore", []op{{kind: opSave}, {kind: opRestore}}, "\x1b7\x1b8"},
		{"carriage", []op{{kind: opCarriage}}, "\r"},
		{"frames verbatim", []op{{kind: opFrames, frames: []string{"\x1b_Ga=d;\x1b\\"}}}, "\x1b_Ga=d;\x1b\\"},
		{
			"sequence",
			[]op{
				{kind: opText, text: "  "},
				{kind: opMoveLeft, n: 2},
				{kind: opSave},
				{kind: opMoveUp, n: 1},
				{kind: opRestore},
				{kind: opMoveRight, n: 2},
			},
			"  \x1b[2D\x1b7\x1b[1A\x1b8\x1b[2C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := &Writer{out: &buf}
			require.NoError(t, w.play(tt.ops))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriterPassthroughWrapsFramesOnly(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{out: &buf, passthrough: true}

	err := w.play([]op{
		{kind: opText, text: "x"},
		{kind: opFrames, frames: []string{"\x1b_Ga=d;\x1b\\"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "x"+"\x1bPtmux;\x1b"+"\x1b\x1b_Ga=d;\x1b\x1b\\"+"\x1b\\", buf.String())
}

func TestNewWriterOutsideTmux(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM_PROGRAM", "")

	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.False(t, w.passthrough)
}
