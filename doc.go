/*
Package texcat renders mixed text and LaTeX math to terminal emulators that
support the kitty graphics protocol. Inline math ($...$) is rasterized and
placed directly inside the surrounding text line; block math ($$...$$) gets
its own vertical region, scaled down to the terminal width when necessary.

The pipeline is fully synchronous: input is split into spans, each line of
output is buffered, math spans are rasterized and measured, and the layout
engine emits a list of cursor operations that the terminal writer plays back
against stdout. Rows above and below a line are blank-reserved whenever a
rendered image is taller than one character cell, so images never collide
with adjacent lines.

Basic usage:

	cfg := texcat.DefaultConfig()
	geo := texcat.DetectGeometry()
	mt, _ := texcat.NewMathText()
	prov := &texcat.Chain{Builtin: mt, External: texcat.NewLaTeX(0)}

	r := texcat.New(os.Stdout, geo, cfg, prov, texcat.Options{
		Graphics: texcat.KittySupported(),
	})
	err := r.Render(ctx, "the identity $e^{i\\pi}+1=0$ holds")

Rasterization failures never abort a run: the affected span degrades to its
literal source text. Only input acquisition errors (handled by the CLI) are
fatal.

Known limitations:

  - A literal dollar sign inside a math run ends the run; there is no
    delimiter escaping.
  - An inline image wider than the remaining line is not wrapped; the
    terminal soft-wraps its placeholder cells.
  - Text width arithmetic assumes one cell per character of plain text;
    wide and combining characters are out of scope.
*/
package texcat
