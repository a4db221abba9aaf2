package texcat

import (
	"context"
	"io"
	"strings"
)

// Options selects the output mode for one Renderer.
type Options struct {
	// Graphics enables image placement. When false every math span is
	// rendered without the graphics protocol: inline math falls back to
	// its literal source, block math to unicode halfblocks.
	Graphics bool
}

// Renderer turns mixed text-and-math input into terminal output. It is a
// one-shot pipeline: parse, rasterize, place. Not safe for concurrent use.
type Renderer struct {
	layout *Layout
	writer *Writer
}

// New builds a Renderer writing to out with the given terminal geometry,
// rendering configuration and rasterization provider.
func New(out io.Writer, geo Geometry, cfg Config, prov Provider, opts Options) *Renderer {
	return &Renderer{
		layout: newLayout(geo, cfg, prov, opts.Graphics),
		writer: NewWriter(out),
	}
}

// Render writes input to the output stream with every math span replaced
// by its rendering. Text is reproduced byte for byte, including trailing
// content without a final newline getting one (output is line-oriented).
// ctx bounds the rasterization calls.
func (r *Renderer) Render(ctx context.Context, input string) error {
	for _, s := range Parse(input) {
		switch s.Kind {
		case SpanBlockMath:
			if err := r.flush(ctx); err != nil {
				return err
			}
			if err := r.writer.play(r.layout.block(ctx, s)); err != nil {
				return err
			}
		case SpanInlineMath:
			r.layout.add(s)
		default:
			if err := r.text(ctx, s.Content); err != nil {
				return err
			}
		}
	}
	return r.flush(ctx)
}

// text feeds a plain-text span into the line buffer, flushing at every
// newline so each physical line is laid out on its own.
func (r *Renderer) text(ctx context.Context, content string) error {
	parts := strings.Split(content, "\n")
	for i, part := range parts {
		if i > 0 {
			if err := r.flushOrNewline(ctx); err != nil {
				return err
			}
		}
		if part != "" {
			r.layout.add(Span{Kind: SpanText, Content: part})
		}
	}
	return nil
}

// flushOrNewline ends the current physical line: a buffered line is
// flushed (which emits its own newline), an empty buffer emits a bare
// newline so blank input lines survive.
func (r *Renderer) flushOrNewline(ctx context.Context) error {
	if r.layout.pending() {
		return r.writer.play(r.layout.flushLine(ctx))
	}
	return r.writer.play([]op{{kind: opNewline, n: 1}})
}

func (r *Renderer) flush(ctx context.Context) error {
	if !r.layout.pending() {
		return nil
	}
	return r.writer.play(r.layout.flushLine(ctx))
}
