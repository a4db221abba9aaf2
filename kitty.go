package texcat

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	apcStart = "\x1b_G"
	apcEnd   = "\x1b\\"

	// ChunkSize is the number of base64-encoded bytes carried per frame.
	// The graphics protocol forbids unbounded escape sequences, so image
	// payloads are split into fixed-size chunks chained with m=1/m=0
	// continuation flags.
	ChunkSize = 4096
)

// Attr is a single key=value control pair of a graphics command.
type Attr struct {
	Key, Value string
}

// Command is one kitty graphics command: an ordered list of control
// attributes plus an optional binary payload. Attribute order is preserved
// as set by the caller.
type Command struct {
	attrs []Attr
}

// NewCommand returns a command pre-loaded with the given attributes.
func NewCommand(attrs ...Attr) *Command {
	return &Command{attrs: attrs}
}

// Set appends a key=value attribute.
func (c *Command) Set(key, value string) *Command {
	c.attrs = append(c.attrs, Attr{Key: key, Value: value})
	return c
}

// SetInt appends a key=value attribute with an integer value.
func (c *Command) SetInt(key string, value int) *Command {
	return c.Set(key, strconv.Itoa(value))
}

func (c *Command) controls() string {
	parts := make([]string, 0, len(c.attrs))
	for _, a := range c.attrs {
		parts = append(parts, a.Key+"="+a.Value)
	}
	return strings.Join(parts, ",")
}

// Frames serializes the command into complete APC escape sequences.
//
// Without a payload the result is a single attributes-only frame, used for
// commands that reference an already transmitted image. With a payload the
// base64 encoding is split into ChunkSize pieces; the first frame carries
// the attributes plus m=<more>, continuation frames carry only m=<more>.
// A payload whose encoding lands exactly on a chunk boundary still ends
// with an m=0 frame, so every multi-frame command is explicitly
// terminated. Writing the returned frames verbatim, in order, is a
// complete protocol-valid command.
func (c *Command) Frames(payload []byte) []string {
	ctrl := c.controls()
	if len(payload) == 0 {
		return []string{apcStart + ctrl + ";" + apcEnd}
	}

	b64 := base64.StdEncoding.EncodeToString(payload)
	var frames []string
	for {
		n := min(ChunkSize, len(b64))
		chunk := b64[:n]
		b64 = b64[n:]

		more := "0"
		if len(b64) > 0 || n == ChunkSize {
			more = "1"
		}

		header := "m=" + more
		if len(frames) == 0 {
			header = ctrl + ",m=" + more
		}
		frames = append(frames, apcStart+header+";"+chunk+apcEnd)

		if more == "0" {
			break
		}
	}
	return frames
}

// placeCommand builds the transmit-and-display command used for every
// equation image: a=T (transmit+place), f=100 (PNG data), C=1 (do not move
// the cursor). yOffset, when nonzero, is the vertical pixel offset within
// the destination cell.
func placeCommand(yOffset int) *Command {
	c := NewCommand().Set("a", "T").Set("f", "100").Set("C", "1")
	if yOffset != 0 {
		c.SetInt("Y", yOffset)
	}
	return c
}
