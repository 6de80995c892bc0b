package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "heading with generated id",
			input: "# My Title",
			want:  []string{"<h1", `id="my-title"`, "My Title"},
		},
		{
			name:  "emphasis and code",
			input: "Some *emphasis* and `code`.",
			want:  []string{"<em>emphasis</em>", "<code>code</code>"},
		},
		{
			name:  "links open in a new tab",
			input: "[site](https://example.com)",
			want:  []string{`href="https://example.com"`, `target="_blank"`},
		},
		{
			name:  "fenced code block",
			input: "```\nfunc main() {}\n```",
			want:  []string{"<pre>", "func main() {}"},
		},
		{
			name:  "table extension",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := string(Markdown([]byte(tc.input)))
			for _, fragment := range tc.want {
				if !strings.Contains(out, fragment) {
					t.Errorf("expected output to contain %q, got %q", fragment, out)
				}
			}
		})
	}
}

func TestMarkdown_EmptyInput(t *testing.T) {
	out := Markdown(nil)
	if strings.TrimSpace(string(out)) != "" {
		t.Errorf("expected empty output for empty input, got %q", out)
	}
}
