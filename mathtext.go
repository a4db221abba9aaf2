package texcat

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// MathText is the built-in rasterizer. It draws the expression text with
// an embedded font onto a transparent canvas; it does not typeset LaTeX.
// Output is always legible, which is the point of a built-in fallback that
// has no external dependencies. The primary face is italic, matching the
// conventional look of math; the alternate set swaps in the regular face
// for glyphs the italic cut lacks.
type MathText struct {
	italic  *sfnt.Font
	regular *sfnt.Font
}

// NewMathText parses the embedded fonts once for reuse across calls.
func NewMathText() (*MathText, error) {
	it, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing italic font: %w", err)
	}
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	return &MathText{italic: it, regular: reg}, nil
}

// Rasterize draws expr at the requested point size and DPI and encodes a
// transparent-background PNG.
func (m *MathText) Rasterize(ctx context.Context, expr string, opts RenderOpts) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if expr == "" {
		return nil, fmt.Errorf("empty expression")
	}

	fnt := m.italic
	if opts.AltFont {
		fnt = m.regular
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     float64(opts.DPI),
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("building face: %w", err)
	}
	defer face.Close()

	fg, err := parseHexColor(opts.Color)
	if err != nil {
		return nil, err
	}

	d := &font.Drawer{Face: face}
	advance := d.MeasureString(expr)
	metrics := face.Metrics()

	pad := int(opts.Padding * float64(opts.DPI))
	width := advance.Ceil() + 2*pad
	height := metrics.Ascent.Ceil() + metrics.Descent.Ceil() + 2*pad
	if width <= 2*pad || height <= 0 {
		return nil, fmt.Errorf("expression %q measures to an empty image", expr)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	d.Dst = canvas
	d.Src = image.NewUniform(fg)
	d.Dot = fixed.P(pad, pad+metrics.Ascent.Ceil())
	d.DrawString(expr)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHexColor parses "#rrggbb" (the leading '#' is optional).
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
