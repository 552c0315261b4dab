package index

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces Canvas rich-text fields to their text content.
// Script and style bodies are dropped entirely; remaining whitespace is
// collapsed so embeddings see prose, not markup layout.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0

	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tok.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.WriteString(string(tok.Text()))
				b.WriteByte(' ')
			}
		}
	}
}
