package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText walks an HTML document and returns its visible text with
// whitespace collapsed. Script, style, and head content is skipped.
// Non-HTML input comes back roughly as-is, so plain-text articles pass
// through unharmed.
func ExtractText(htmlSource string) string {
	doc, err := html.Parse(strings.NewReader(htmlSource))
	if err != nil {
		return strings.Join(strings.Fields(htmlSource), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
