package common

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlEscaper covers the five markup-significant characters. Issue text
// comes straight from Jira and is untrusted, so every field passes through
// here before it is written into markup, attributes included.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML returns s with HTML-significant characters replaced by their
// entity forms.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// VisibleText parses a markup fragment and returns the concatenated text
// content, the way a browser would display it. Rendering tests use it to
// prove that escaped issue fields come back as inert text.
func VisibleText(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var text strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(root)
	return strings.TrimSpace(text.String())
}

// FindElements returns all element nodes with the given tag below root.
func FindElements(root *html.Node, tagName string) []*html.Node {
	var nodes []*html.Node

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tagName {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(root)
	return nodes
}

// GetAttribute gets the value of an attribute from a node
func GetAttribute(node *html.Node, attrKey string) string {
	if node.Type != html.ElementNode {
		return ""
	}
	for _, attr := range node.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}
