package prompt

import "testing"

func TestHTMLToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n ", ""},
		{"plain text", "hello world", "hello world"},
		{"bold", "<b>bold</b> text", "**bold** text"},
		{"strong", "<strong>bold</strong>", "**bold**"},
		{"italic", "<i>slanted</i>", "*slanted*"},
		{"emphasis", "<em>slanted</em>", "*slanted*"},
		{"line break", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"entities", "x &amp; y &lt; z", "x & y < z"},
		{"collapses spaces", "a    b", "a b"},
		{
			"unordered list",
			"<ul><li>first</li><li>second</li></ul>",
			"* first\n* second",
		},
		{
			"ordered list",
			"<ol><li>first</li><li>second</li><li>third</li></ol>",
			"1. first\n2. second\n3. third",
		},
		{
			"mixed formatting",
			"Definition: <b>brief</b><br><ul><li><i>adj.</i> short</li></ul>",
			"Definition: **brief**\n\n* *adj.* short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLToMarkdown(tt.in); got != tt.want {
				t.Errorf("HTMLToMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
