package texcat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMixedLine(t *testing.T) {
	spans := Parse("a $x$ b $$y$$ c")
	want := []Span{
		{SpanText, "a "},
		{SpanInlineMath, "$x$"},
		{SpanText, " b "},
		{SpanBlockMath, "$$y$$"},
		{SpanText, " c"},
	}
	assert.Equal(t, want, spans)
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "plain text only",
			input: "no math here",
			want:  []Span{{SpanText, "no math here"}},
		},
		{
			name:  "empty inline pair is text",
			input: "a $$ b",
			want:  []Span{{SpanText, "a $$ b"}},
		},
		{
			name:  "empty block pair is text",
			input: "a $$$$ b",
			want:  []Span{{SpanText, "a $$$$ b"}},
		},
		{
			name:  "unterminated inline absorbed",
			input: "price is $5 and rising",
			want:  []Span{{SpanText, "price is $5 and rising"}},
		},
		{
			name:  "unterminated block falls back to inline",
			input: "a $$x$ b",
			want: []Span{
				{SpanText, "a $"},
				{SpanInlineMath, "$x$"},
				{SpanText, " b"},
			},
		},
		{
			name:  "block adjacent to inline delimiter resolves as block",
			input: "$$a+b$$",
			want:  []Span{{SpanBlockMath, "$$a+b$$"}},
		},
		{
			name:  "block interior starting with dollar",
			input: "$$$x$$",
			want:  []Span{{SpanBlockMath, "$$$x$$"}},
		},
		{
			name:  "multiline block",
			input: "$$a\n+b$$",
			want:  []Span{{SpanBlockMath, "$$a\n+b$$"}},
		},
		{
			name:  "back to back inline runs",
			input: "$a$$b$",
			want: []Span{
				{SpanInlineMath, "$a$"},
				{SpanInlineMath, "$b$"},
			},
		},
		{
			name:  "trailing lone dollar",
			input: "$a$ end $",
			want: []Span{
				{SpanInlineMath, "$a$"},
				{SpanText, " end $"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

// Concatenating all spans in order must reconstruct the input exactly,
// for any input.
func TestParseLossless(t *testing.T) {
	inputs := []string{
		"",
		"$",
		"$$",
		"$$$",
		"$$$$",
		"$$$$$",
		"a $x$ b $$y$$ c",
		"a $$x$ b",
		"unbalanced $x and then $$y$$",
		"newlines $a\nb$ inside\nand outside",
		"$ $",
		"x$",
		"$$\n$$",
		"tail$$",
	}
	for _, in := range inputs {
		var sb strings.Builder
		for _, s := range Parse(in) {
			sb.WriteString(s.Content)
		}
		assert.Equal(t, in, sb.String(), "input %q", in)
	}
}

func TestSpanMath(t *testing.T) {
	assert.Equal(t, "x", Span{SpanInlineMath, "$x$"}.Math())
	assert.Equal(t, "y", Span{SpanBlockMath, "$$y$$"}.Math())
	assert.Equal(t, "t", Span{SpanText, "t"}.Math())
}
