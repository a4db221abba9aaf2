package texcat

import (
	"regexp"
	"strings"
)

// Symbols the built-in glyph renderer cannot produce acceptably (clipped
// or missing). Expressions containing any of them are routed straight to
// the external engine instead of waiting for a failed attempt.
var externalOnlySymbols = []string{
	`\Longleftarrow`, `\Longrightarrow`, `\Longleftrightarrow`,
	`\impliedby`, `\implies`, `\iff`,
}

// NeedsExternal reports whether expr contains markup known to require the
// external rendering engine.
func NeedsExternal(expr string) bool {
	for _, sym := range externalOnlySymbols {
		if strings.Contains(expr, sym) {
			return true
		}
	}
	return false
}

var (
	// \le and \ge only when not followed by more letters (so \left and
	// \geq stay untouched). RE2 has no lookahead; capture the boundary
	// character and put it back.
	shortLeRe = regexp.MustCompile(`\\le([^a-zA-Z]|$)`)
	shortGeRe = regexp.MustCompile(`\\ge([^a-zA-Z]|$)`)

	beginEnvRe = regexp.MustCompile(`\\begin\{(align|equation|gather|dmath|multline|eqnarray)\}`)
	endEnvRe   = regexp.MustCompile(`\\end\{(align|equation|gather|dmath|multline|eqnarray)\}`)
)

// Normalize rewrites a math expression into the form the rasterizers
// handle best. It is a pure text transform: same input, same output, no
// side effects.
func Normalize(expr string) string {
	// Single-line rendering; interior newlines become spaces.
	expr = strings.ReplaceAll(expr, "\n", " ")

	// Prefer the long inequality forms.
	expr = shortLeRe.ReplaceAllString(expr, `\leq$1`)
	expr = shortGeRe.ReplaceAllString(expr, `\geq$1`)

	// \lvert/\rvert render unreliably; plain bars do not.
	expr = strings.ReplaceAll(expr, `\left\lvert`, `\left|`)
	expr = strings.ReplaceAll(expr, `\right\rvert`, `\right|`)
	expr = strings.ReplaceAll(expr, `\lvert`, `|`)
	expr = strings.ReplaceAll(expr, `\rvert`, `|`)

	// Long arrows clip at the top; a zero-width strut forces enough
	// line height for them.
	expr = strings.ReplaceAll(expr, `\impliedby`, `\Longleftarrow\rule{0pt}{2.5ex}`)
	expr = strings.ReplaceAll(expr, `\implies`, `\Longrightarrow\rule{0pt}{2.5ex}`)
	expr = strings.ReplaceAll(expr, `\iff`, `\Longleftrightarrow\rule{0pt}{2.5ex}`)

	return expr
}

// normalizeForExternal prepares an expression for the external LaTeX
// toolchain: wrapping dollar signs are stripped and numbered environments
// are replaced with their starred (unnumbered) forms.
func normalizeForExternal(expr string) string {
	inner := strings.TrimSpace(expr)
	for range 2 {
		if len(inner) >= 2 && strings.HasPrefix(inner, "$") && strings.HasSuffix(inner, "$") {
			inner = inner[1 : len(inner)-1]
		}
	}
	inner = beginEnvRe.ReplaceAllString(inner, `\begin{$1*}`)
	inner = endEnvRe.ReplaceAllString(inner, `\end{$1*}`)
	return inner
}
