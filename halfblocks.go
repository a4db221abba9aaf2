package texcat

import (
	"bytes"
	"image/png"
	"math"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/x/mosaic"
)

// blockHalfblocks is the degraded block-math path for terminals without
// graphics support: the rasterized equation is converted to unicode
// halfblock cells. No image protocol is involved, just colored text, so
// it survives pagers and unsupported emulators.
func (l *Layout) blockHalfblocks(data []byte, widthPx int, fallback []op) []op {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		log.Debugf("halfblock conversion failed: %v", err)
		return fallback
	}

	cols := int(math.Ceil(float64(widthPx) / l.geo.CellWidth))
	cols = min(cols, l.geo.Cols)
	if cols < 1 {
		cols = 1
	}

	m := mosaic.New().Width(cols)
	rendered := strings.TrimRight(m.Render(img), "\n")
	if strings.TrimSpace(rendered) == "" {
		return fallback
	}

	ops := []op{{kind: opNewline, n: l.cfg.Block.MarginTop}}
	for _, line := range strings.Split(rendered, "\n") {
		ops = append(ops,
			op{kind: opText, text: line},
			op{kind: opNewline, n: 1},
		)
	}
	return append(ops, op{kind: opNewline, n: l.cfg.Block.MarginBottom})
}
