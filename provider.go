package texcat

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
)

// ErrUnavailable marks a provider whose backing toolchain is not installed
// or not usable in this environment. The fallback chain skips it instead
// of reporting a render failure.
var ErrUnavailable = errors.New("renderer unavailable")

// RenderOpts carries the per-call rasterization parameters. They are
// threaded explicitly through every call, never stored as process-wide
// state, so a retry with a different configuration cannot leak into later
// renders.
type RenderOpts struct {
	DPI      int
	FontSize float64 // points
	Color    string  // "#rrggbb" foreground
	Padding  float64 // inches of transparent border
	AltFont  bool    // use the alternate font set (retry pass)
}

// Provider rasterizes one math expression into a PNG. Implementations are
// stateless with respect to each other: two identical expressions render
// independently.
type Provider interface {
	Rasterize(ctx context.Context, expr string, opts RenderOpts) ([]byte, error)
}

// Chain is the fallback chain over the built-in and external renderers:
//
//  1. expressions classified as external-only go to External first
//  2. otherwise Builtin is tried
//  3. on failure, External
//  4. on failure, Builtin again with the alternate font set
//
// The retry with an alternate configuration is required behavior, not an
// optimization: a missing glyph in the primary face is the most common
// failure and the alternate face usually has it.
type Chain struct {
	Builtin  Provider
	External Provider
}

// Rasterize walks the chain until one attempt yields a PNG.
func (c *Chain) Rasterize(ctx context.Context, expr string, opts RenderOpts) ([]byte, error) {
	if c.External != nil && NeedsExternal(expr) {
		if data, err := c.External.Rasterize(ctx, expr, opts); err == nil {
			return data, nil
		} else if !errors.Is(err, ErrUnavailable) {
			log.Debugf("external renderer failed for routed expression: %v", err)
		}
	}

	if c.Builtin == nil {
		return nil, fmt.Errorf("rasterize %q: %w", expr, ErrUnavailable)
	}

	data, err := c.Builtin.Rasterize(ctx, expr, opts)
	if err == nil {
		return data, nil
	}
	log.Debugf("builtin renderer failed: %v", err)

	if c.External != nil {
		if data, eerr := c.External.Rasterize(ctx, expr, opts); eerr == nil {
			return data, nil
		} else if !errors.Is(eerr, ErrUnavailable) {
			log.Debugf("external renderer failed: %v", eerr)
		}
	}

	alt := opts
	alt.AltFont = true
	if data, rerr := c.Builtin.Rasterize(ctx, expr, alt); rerr == nil {
		return data, nil
	}

	return nil, fmt.Errorf("rasterize %q: %w", expr, err)
}
