package texcat

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultExternalTimeout bounds one invocation of the external toolchain.
// pdflatex on a malformed expression can otherwise hang at an error prompt
// despite -interaction=nonstopmode.
const DefaultExternalTimeout = 20 * time.Second

// Document used for standalone block environments (\begin{align*} etc.).
const blockDocument = `\documentclass[preview]{standalone}
\usepackage{amsmath}
\usepackage{amssymb}
\usepackage[dvipsnames,svgnames,x11names]{xcolor}
\usepackage{graphicx}
\begin{document}
\fontsize{%f}{%f}\selectfont
\definecolor{currcolor}{HTML}{%s}
\color{currcolor}
%s
\end{document}
`

// Document used for inline math. The preview package trims the page to
// the formula; article with tightpage keeps long formulas on one line.
const inlineDocument = `\documentclass{article}
\usepackage{amsmath}
\usepackage{amssymb}
\usepackage[dvipsnames,svgnames,x11names]{xcolor}
\usepackage{graphicx}
\usepackage[active,tightpage]{preview}
\setlength\PreviewBorder{0pt}
\begin{document}
\fontsize{%f}{%f}\selectfont
\begin{preview}
\definecolor{currcolor}{HTML}{%s}
\color{currcolor}
$%s$
\end{preview}
\end{document}
`

// LaTeX renders through the system toolchain: pdflatex for typesetting,
// ImageMagick convert for PDF-to-PNG. It handles the full language, at the
// cost of two subprocesses per expression.
type LaTeX struct {
	timeout time.Duration

	// Binary names, overridable in tests.
	pdflatex string
	convert  string
}

// NewLaTeX returns an external provider with the given timeout per
// rasterization; zero means DefaultExternalTimeout.
func NewLaTeX(timeout time.Duration) *LaTeX {
	if timeout <= 0 {
		timeout = DefaultExternalTimeout
	}
	return &LaTeX{timeout: timeout, pdflatex: "pdflatex", convert: "convert"}
}

// Rasterize typesets expr and converts the resulting PDF to a PNG.
// Returns ErrUnavailable when either binary is missing so the chain moves
// on without treating it as a render failure.
func (l *LaTeX) Rasterize(ctx context.Context, expr string, opts RenderOpts) ([]byte, error) {
	if _, err := exec.LookPath(l.pdflatex); err != nil {
		return nil, fmt.Errorf("%s: %w", l.pdflatex, ErrUnavailable)
	}
	if _, err := exec.LookPath(l.convert); err != nil {
		return nil, fmt.Errorf("%s: %w", l.convert, ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	colorVal := strings.TrimPrefix(opts.Color, "#")
	final := normalizeForExternal(expr)

	var doc string
	if strings.HasPrefix(strings.TrimSpace(final), `\begin{`) {
		doc = fmt.Sprintf(blockDocument, opts.FontSize, opts.FontSize*1.2, colorVal, final)
	} else {
		doc = fmt.Sprintf(inlineDocument, opts.FontSize, opts.FontSize*1.2, colorVal, final)
	}

	dir, err := os.MkdirTemp("", "texcat-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	texPath := filepath.Join(dir, "equation.tex")
	pdfPath := filepath.Join(dir, "equation.pdf")
	pngPath := filepath.Join(dir, "equation.png")

	if err := os.WriteFile(texPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("writing tex source: %w", err)
	}

	// pdflatex exits nonzero on recoverable warnings; only the missing
	// PDF below is treated as failure.
	tex := exec.CommandContext(ctx, l.pdflatex,
		"-interaction=nonstopmode", "-output-directory", dir, texPath)
	tex.Stdout = nil
	tex.Stderr = nil
	_ = tex.Run()

	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("pdflatex produced no output for %q", expr)
	}

	args := []string{"-density", strconv.Itoa(opts.DPI), "-background", "none"}
	if padPx := int(opts.Padding * float64(opts.DPI)); padPx > 0 {
		args = append(args, "-bordercolor", "none", "-border", strconv.Itoa(padPx))
	}
	args = append(args, pdfPath, pngPath)

	conv := exec.CommandContext(ctx, l.convert, args...)
	conv.Stdout = nil
	conv.Stderr = nil
	if err := conv.Run(); err != nil {
		return nil, fmt.Errorf("converting pdf: %w", err)
	}

	data, err := os.ReadFile(pngPath)
	if err != nil {
		return nil, fmt.Errorf("reading converted png: %w", err)
	}
	return data, nil
}
