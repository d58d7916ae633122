package content

import (
	"strings"

	"golang.org/x/net/html"
)

// voidTags render without a closing tag and never carry children.
var voidTags = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// NodesToHTML renders a node tree back to HTML. Conversion output is a
// normal form: feeding the result of NodesToHTML back through Parse
// yields a structurally equal tree.
func NodesToHTML(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return b.String()
}

// ContentToHTML renders either form of parsed content back to HTML.
func ContentToHTML(c Content) string {
	if c.IsText() {
		return html.EscapeString(c.Text)
	}
	return NodesToHTML(c.Nodes)
}

func writeNode(b *strings.Builder, n Node) {
	switch typed := n.(type) {
	case Text:
		b.WriteString(html.EscapeString(string(typed)))
	case *Element:
		writeElement(b, typed)
	}
}

func writeElement(b *strings.Builder, el *Element) {
	b.WriteString("<")
	b.WriteString(el.Tag)
	if el.Attrs != nil {
		if el.Attrs.Href != "" {
			b.WriteString(` href="`)
			b.WriteString(html.EscapeString(el.Attrs.Href))
			b.WriteString(`"`)
		} else if el.Attrs.Src != "" {
			b.WriteString(` src="`)
			b.WriteString(html.EscapeString(el.Attrs.Src))
			b.WriteString(`"`)
		}
	}

	if voidTags[el.Tag] {
		b.WriteString("/>")
		return
	}

	b.WriteString(">")
	for _, child := range el.Children {
		writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(el.Tag)
	b.WriteString(">")
}
