package texcat

import (
	"bytes"
	"encoding/binary"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNGDimensions reads the pixel width and height out of a PNG header
// without decoding the image. It returns ok=false for truncated or
// non-PNG input; every layout decision depends on these values, so the
// image's own header is the only source trusted for them.
func PNGDimensions(data []byte) (width, height int, ok bool) {
	// 8-byte signature, 8-byte IHDR chunk header, 8 bytes of dimensions.
	if len(data) < 24 || !bytes.Equal(data[:8], pngMagic) {
		return 0, 0, false
	}
	if !bytes.Equal(data[12:16], []byte("IHDR")) {
		return 0, 0, false
	}
	width = int(binary.BigEndian.Uint32(data[16:20]))
	height = int(binary.BigEndian.Uint32(data[20:24]))
	if width < 1 || height < 1 {
		return 0, 0, false
	}
	return width, height, true
}
