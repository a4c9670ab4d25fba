package prompt

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Flashcard fields carry lightweight HTML. Only the formatting that
// affects prompt readability is translated; unknown tags pass through.
var (
	boldPattern   = regexp.MustCompile(`(?s)<b>(.*?)</b>`)
	strongPattern = regexp.MustCompile(`(?s)<strong>(.*?)</strong>`)
	italicPattern = regexp.MustCompile(`(?s)<i>(.*?)</i>`)
	emPattern     = regexp.MustCompile(`(?s)<em>(.*?)</em>`)
	brPattern     = regexp.MustCompile(`<br\s*/?>`)
	ulPattern     = regexp.MustCompile(`(?s)<ul>(.*?)</ul>`)
	olPattern     = regexp.MustCompile(`(?s)<ol>(.*?)</ol>`)
	liPattern     = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	spacePattern  = regexp.MustCompile(` +`)
)

// HTMLToMarkdown converts basic field HTML (bold, italic, line breaks,
// simple lists) to Markdown. Nested lists are not handled.
func HTMLToMarkdown(htmlText string) string {
	if strings.TrimSpace(htmlText) == "" {
		return ""
	}

	text := html.UnescapeString(htmlText)

	text = boldPattern.ReplaceAllString(text, "**$1**")
	text = strongPattern.ReplaceAllString(text, "**$1**")
	text = italicPattern.ReplaceAllString(text, "*$1*")
	text = emPattern.ReplaceAllString(text, "*$1*")
	text = brPattern.ReplaceAllString(text, "\n")

	text = convertLists(text)

	// Collapse runs of spaces but preserve line breaks.
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

func convertLists(text string) string {
	text = ulPattern.ReplaceAllStringFunc(text, func(block string) string {
		inner := ulPattern.FindStringSubmatch(block)[1]
		return listItems(inner, false)
	})
	text = olPattern.ReplaceAllStringFunc(text, func(block string) string {
		inner := olPattern.FindStringSubmatch(block)[1]
		return listItems(inner, true)
	})
	return text
}

func listItems(listHTML string, ordered bool) string {
	var lines []string

	for i, m := range liPattern.FindAllStringSubmatch(listHTML, -1) {
		item := strings.TrimSpace(m[1])
		marker := "*"
		if ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, marker+" "+item)
	}

	return "\n" + strings.Join(lines, "\n") + "\n"
}
