package texcat

import "strings"

// SpanKind classifies one parsed unit of input.
type SpanKind int

const (
	// SpanText is plain text, written through verbatim.
	SpanText SpanKind = iota
	// SpanInlineMath is a $...$ run that shares its text line.
	SpanInlineMath
	// SpanBlockMath is a $$...$$ run that gets its own vertical region.
	SpanBlockMath
)

// Span is a contiguous unit of input. Content holds every character of the
// original input, delimiters included, so concatenating the Content of all
// spans in order reconstructs the input exactly.
type Span struct {
	Kind    SpanKind
	Content string
}

// Math returns the expression interior with the math delimiters stripped.
// For text spans it returns Content unchanged.
func (s Span) Math() string {
	switch s.Kind {
	case SpanInlineMath:
		return s.Content[1 : len(s.Content)-1]
	case SpanBlockMath:
		return s.Content[2 : len(s.Content)-2]
	}
	return s.Content
}

// Parse splits text into an ordered sequence of spans. Matching is
// leftmost and non-greedy: a run ends at the first closing delimiter, and
// when both a block and an inline delimiter start at the same position the
// block form wins. Delimiter pairs with an empty interior and unterminated
// opening delimiters are absorbed into the surrounding text, so parsing is
// total over any input.
func Parse(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Content: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if text[i] != '$' {
			j := strings.IndexByte(text[i:], '$')
			if j < 0 {
				plain.WriteString(text[i:])
				break
			}
			plain.WriteString(text[i : i+j])
			i += j
			continue
		}

		// Block form first when both delimiters start here.
		if strings.HasPrefix(text[i:], "$$") {
			j := strings.Index(text[i+2:], "$$")
			switch {
			case j > 0:
				flush()
				end := i + 2 + j + 2
				spans = append(spans, Span{Kind: SpanBlockMath, Content: text[i:end]})
				i = end
				continue
			case j == 0:
				// "$$$$": zero-length interior, keep as text.
				plain.WriteString("$$$$")
				i += 4
				continue
			}
			// Unterminated block opener. Emit one '$' as text and rescan
			// from the second '$', which may still open an inline run.
			plain.WriteByte('$')
			i++
			continue
		}

		// Inline run: a '$' not followed by another '$'.
		j := strings.IndexByte(text[i+1:], '$')
		if j < 0 {
			plain.WriteString(text[i:])
			break
		}
		flush()
		end := i + 1 + j + 1
		spans = append(spans, Span{Kind: SpanInlineMath, Content: text[i:end]})
		i = end
	}
	flush()
	return spans
}
