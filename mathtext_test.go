package texcat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderOpts() RenderOpts {
	return RenderOpts{DPI: 100, FontSize: 12, Color: "#eeeeee", Padding: 0.1}
}

func TestMathTextRasterize(t *testing.T) {
	m, err := NewMathText()
	require.NoError(t, err)

	data, err := m.Rasterize(context.Background(), "x + y = z", testRenderOpts())
	require.NoError(t, err)

	w, h, ok := PNGDimensions(data)
	require.True(t, ok)
	// 0.1in padding at 100dpi is 10px a side; content must add to that.
	assert.Greater(t, w, 20)
	assert.Greater(t, h, 20)
}

func TestMathTextAltFont(t *testing.T) {
	m, err := NewMathText()
	require.NoError(t, err)

	opts := testRenderOpts()
	opts.AltFont = true
	data, err := m.Rasterize(context.Background(), "x + y", opts)
	require.NoError(t, err)
	_, _, ok := PNGDimensions(data)
	assert.True(t, ok)
}

func TestMathTextErrors(t *testing.T) {
	m, err := NewMathText()
	require.NoError(t, err)

	_, err = m.Rasterize(context.Background(), "", testRenderOpts())
	assert.Error(t, err, "empty expression")

	opts := testRenderOpts()
	opts.Color = "not-a-color"
	_, err = m.Rasterize(context.Background(), "x", opts)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Rasterize(ctx, "x", testRenderOpts())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#1a2b3c")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x1a), c.R)
	assert.Equal(t, uint8(0x2b), c.G)
	assert.Equal(t, uint8(0x3c), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	_, err = parseHexColor("eeeeee")
	assert.NoError(t, err, "leading # is optional")

	for _, bad := range []string{"", "#fff", "#gggggg", "#eeeeeee"} {
		_, err := parseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
