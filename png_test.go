package texcat

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

// encodePNG renders a blank RGBA image of the given size through the
// stdlib encoder, so header offsets are tested against real output.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestPNGDimensions(t *testing.T) {
	data := encodePNG(t, 37, 211)
	w, h, ok := PNGDimensions(data)
	assert.True(t, ok)
	assert.Equal(t, 37, w)
	assert.Equal(t, 211, h)
}

func TestPNGDimensionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"truncated signature", []byte{0x89, 'P', 'N'}},
		{"signature only", append([]byte{}, pngMagic...)},
		{"not a png", []byte("GIF89a such image, very pixels")},
		{"jpeg magic", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := PNGDimensions(tt.data)
			assert.False(t, ok)
		})
	}

	// Header truncated mid-IHDR.
	data := encodePNG(t, 5, 5)
	_, _, ok := PNGDimensions(data[:20])
	assert.False(t, ok)
}
