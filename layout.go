package texcat

import (
	"context"
	"math"
	"strings"

	"github.com/apex/log"
)

// overflowGuard is the fraction of a cell height an image may overhang
// before rows are reserved for it. Sub-pixel overhang is not worth a
// blank line.
const overflowGuard = 0.2

// lineItem is one measured entry of a line buffer: either plain text or a
// rasterized math span. A failed rasterization is stored as text carrying
// the span's literal source.
type lineItem struct {
	text    string
	png     []byte
	width   int // pixels, math only
	yOffset int // pixels relative to the text baseline cell, math only
}

func (it lineItem) isMath() bool { return it.png != nil }

// Layout is the placement engine. It buffers one logical line at a time,
// converts pixel measurements into cell and row counts, and emits op lists
// whose net cursor displacement is zero relative to the row following the
// line — flushes never disturb earlier output or later writes.
//
// Inline and block math share this one engine; they differ only in
// placement mode (sharing a text line versus occupying a region), so the
// overflow-reservation arithmetic is identical for both.
type Layout struct {
	geo      Geometry
	cfg      Config
	prov     Provider
	graphics bool

	line []Span
}

func newLayout(geo Geometry, cfg Config, prov Provider, graphics bool) *Layout {
	return &Layout{geo: geo, cfg: cfg, prov: prov, graphics: graphics}
}

// add appends a span to the current line buffer. Spans must not contain
// newlines; the caller splits text spans and flushes between lines.
func (l *Layout) add(s Span) {
	l.line = append(l.line, s)
}

// pending reports whether the current line buffer holds anything.
func (l *Layout) pending() bool { return len(l.line) > 0 }

// overflowRows converts a pixel overhang into reserved rows, applying the
// guard threshold.
func (l *Layout) overflowRows(pixels float64) int {
	if pixels <= l.geo.CellHeight*overflowGuard {
		return 0
	}
	return int(math.Ceil(pixels / l.geo.CellHeight))
}

// cellSpan is the horizontal footprint of an image in cells, with one
// spare cell so the following text never touches the image edge.
func (l *Layout) cellSpan(widthPx int) int {
	return int(math.Ceil(float64(widthPx)/l.geo.CellWidth)) + 1
}

// rasterizeInline renders one inline math span at a font size chosen so
// the image's natural height approximates one cell height.
func (l *Layout) rasterizeInline(ctx context.Context, s Span) ([]byte, error) {
	fontSize := l.geo.CellHeight * l.cfg.Inline.ScaleFactor * 72 / float64(l.cfg.Inline.DPI)
	return l.prov.Rasterize(ctx, Normalize(s.Math()), RenderOpts{
		DPI:      l.cfg.Inline.DPI,
		FontSize: fontSize,
		Color:    l.cfg.Color,
		Padding:  l.cfg.Inline.Padding,
	})
}

// flushLine renders and lays out the buffered line. The returned ops
// leave the cursor at column 0 of the row following every reserved row.
// An empty buffer produces no output.
func (l *Layout) flushLine(ctx context.Context) []op {
	if len(l.line) == 0 {
		return nil
	}
	spans := l.line
	l.line = nil

	cellH := l.geo.CellHeight
	items := make([]lineItem, 0, len(spans))
	maxUp, maxDown := 0, 0
	hasMath := false

	for _, s := range spans {
		if s.Kind != SpanInlineMath {
			items = append(items, lineItem{text: s.Content})
			continue
		}
		hasMath = true

		if !l.graphics {
			// Degraded mode: the literal source is the rendering.
			items = append(items, lineItem{text: s.Content})
			continue
		}

		data, err := l.rasterizeInline(ctx, s)
		if err != nil {
			log.Debugf("inline span degraded to text: %v", err)
			items = append(items, lineItem{text: s.Content})
			continue
		}
		w, h, ok := PNGDimensions(data)
		if !ok {
			log.Debugf("inline span degraded to text: malformed png")
			items = append(items, lineItem{text: s.Content})
			continue
		}

		// Center on the text cell. Negative offset: image is taller
		// than one cell and extends upward past the line.
		yOffset := int(math.Floor((cellH - float64(h)) / 2))

		if yOffset < 0 {
			maxUp = max(maxUp, l.overflowRows(float64(-yOffset)))
		}
		if bottom := float64(h+yOffset) - cellH; bottom > 0 {
			maxDown = max(maxDown, l.overflowRows(bottom))
		}

		items = append(items, lineItem{png: data, width: w, yOffset: yOffset})
	}

	// Margins are a per-flush decision: applied iff the line carries at
	// least one math span, never inferred from render side effects.
	if hasMath {
		maxUp += l.cfg.Inline.MarginTop
		maxDown += l.cfg.Inline.MarginBottom
	}

	var ops []op
	if maxUp > 0 {
		ops = append(ops, op{kind: opNewline, n: maxUp})
	}

	for _, it := range items {
		if !it.isMath() {
			ops = append(ops, op{kind: opText, text: it.text})
			continue
		}
		ops = append(ops, l.placeInline(it)...)
	}

	ops = append(ops, op{kind: opNewline, n: 1})
	if maxDown > 0 {
		ops = append(ops, op{kind: opNewline, n: maxDown})
	}
	return ops
}

// placeInline emits one inline image: placeholder spaces sized to the
// image footprint, cursor back to the run start, the placement command,
// cursor forward past the run. Images reaching above the line are drawn
// from a saved position moved up whole rows, with the residual offset
// carried in the command, then the cursor is restored — net displacement
// across the whole sequence is exactly the placeholder width.
func (l *Layout) placeInline(it lineItem) []op {
	cells := l.cellSpan(it.width)
	ops := []op{
		{kind: opText, text: strings.Repeat(" ", cells)},
		{kind: opMoveLeft, n: cells},
	}

	if it.yOffset < 0 {
		rowsUp := int(math.Ceil(float64(-it.yOffset) / l.geo.CellHeight))
		residual := it.yOffset + int(float64(rowsUp)*l.geo.CellHeight)
		ops = append(ops,
			op{kind: opSave},
			op{kind: opMoveUp, n: rowsUp},
			op{kind: opFrames, frames: placeCommand(residual).Frames(it.png)},
			op{kind: opRestore},
		)
	} else {
		ops = append(ops, op{kind: opFrames, frames: placeCommand(it.yOffset).Frames(it.png)})
	}

	return append(ops, op{kind: opMoveRight, n: cells})
}

// block renders a standalone $$...$$ span into its own vertical region:
// reserve rows, draw into them from the top, return to the row below. On
// any failure the literal source is written as a fallback line.
func (l *Layout) block(ctx context.Context, s Span) []op {
	fallback := []op{
		{kind: opText, text: s.Content},
		{kind: opNewline, n: 1},
	}

	if l.prov == nil {
		return fallback
	}

	data, err := l.prov.Rasterize(ctx, Normalize(s.Math()), RenderOpts{
		DPI:      l.cfg.Block.DPI,
		FontSize: l.cfg.Block.FontSize,
		Color:    l.cfg.Color,
		Padding:  l.cfg.Block.Padding,
	})
	if err != nil {
		log.Debugf("block span degraded to text: %v", err)
		return fallback
	}
	w, h, ok := PNGDimensions(data)
	if !ok {
		log.Debugf("block span degraded to text: malformed png")
		return fallback
	}

	if !l.graphics {
		return l.blockHalfblocks(data, w, fallback)
	}

	cmd := placeCommand(0)
	rowsNeeded := 0
	if float64(w) > l.geo.PixelWidth() {
		// Wider than the terminal: have the terminal scale it down to
		// exactly the full column count, aspect ratio preserved. The
		// reservation must use the post-scale height.
		cmd.SetInt("c", l.geo.Cols)
		scale := l.geo.PixelWidth() / float64(w)
		rowsNeeded = max(1, int(math.Ceil(float64(h)*scale/l.geo.CellHeight)))
	} else {
		rowsNeeded = max(1, int(math.Ceil(float64(h)/l.geo.CellHeight)))
	}

	ops := []op{
		{kind: opNewline, n: l.cfg.Block.MarginTop},
		{kind: opNewline, n: rowsNeeded},
		{kind: opMoveUp, n: rowsNeeded},
		{kind: opCarriage},
		{kind: opFrames, frames: cmd.Frames(data)},
		{kind: opMoveDown, n: rowsNeeded},
		{kind: opCarriage},
		{kind: opNewline, n: l.cfg.Block.MarginBottom},
	}
	return ops
}
