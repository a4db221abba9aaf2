package texcat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider scripts one provider of a chain and records the options it
// was called with.
type stubProvider struct {
	data  []byte
	err   error
	calls []RenderOpts
	exprs []string
}

func (p *stubProvider) Rasterize(ctx context.Context, expr string, opts RenderOpts) ([]byte, error) {
	p.calls = append(p.calls, opts)
	p.exprs = append(p.exprs, expr)
	return p.data, p.err
}

func TestChainBuiltinFirst(t *testing.T) {
	builtin := &stubProvider{data: []byte("png")}
	external := &stubProvider{data: []byte("other")}
	chain := &Chain{Builtin: builtin, External: external}

	data, err := chain.Rasterize(context.Background(), "x+y", RenderOpts{})
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Len(t, builtin.calls, 1)
	assert.Empty(t, external.calls, "external must not run when builtin succeeds")
}

func TestChainFallsBackToExternal(t *testing.T) {
	builtin := &stubProvider{err: errors.New("missing glyph")}
	external := &stubProvider{data: []byte("png")}
	chain := &Chain{Builtin: builtin, External: external}

	data, err := chain.Rasterize(context.Background(), "x+y", RenderOpts{})
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Len(t, builtin.calls, 1)
	assert.Len(t, external.calls, 1)
}

func TestChainRetriesBuiltinWithAltFont(t *testing.T) {
	builtin := &stubProvider{err: errors.New("missing glyph")}
	external := &stubProvider{err: ErrUnavailable}
	chain := &Chain{Builtin: builtin, External: external}

	_, err := chain.Rasterize(context.Background(), "x+y", RenderOpts{})
	assert.Error(t, err)

	require.Len(t, builtin.calls, 2)
	assert.False(t, builtin.calls[0].AltFont)
	assert.True(t, builtin.calls[1].AltFont, "second builtin attempt uses the alternate font")
}

func TestChainRoutesExternalOnlyExpressions(t *testing.T) {
	builtin := &stubProvider{data: []byte("builtin")}
	external := &stubProvider{data: []byte("external")}
	chain := &Chain{Builtin: builtin, External: external}

	data, err := chain.Rasterize(context.Background(), `a \implies b`, RenderOpts{})
	require.NoError(t, err)
	assert.Equal(t, []byte("external"), data)
	assert.Empty(t, builtin.calls)
}

func TestChainRoutedExpressionFallsBackToBuiltin(t *testing.T) {
	builtin := &stubProvider{data: []byte("builtin")}
	external := &stubProvider{err: ErrUnavailable}
	chain := &Chain{Builtin: builtin, External: external}

	data, err := chain.Rasterize(context.Background(), `a \implies b`, RenderOpts{})
	require.NoError(t, err)
	assert.Equal(t, []byte("builtin"), data)
}

func TestChainNoProviders(t *testing.T) {
	chain := &Chain{}
	_, err := chain.Rasterize(context.Background(), "x", RenderOpts{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
