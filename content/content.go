// Package content converts HTML or Markdown into the restricted node tree
// the Telegraph API accepts as page content.
//
// The pipeline is: normalize (markdown rendering, tag renaming,
// sanitization against the tag vocabulary), parse to a DOM, then a
// recursive walk producing the Node union. Iframe sources pointing at
// known media platforms are rewritten onto the /embed proxy path on the
// way through.
//
//	parsed, err := content.Parse("**bold**", content.ModeMarkdown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page, err := client.CreatePage(ctx, telegraph.CreatePageRequest{
//	    Title:   "Example",
//	    Content: parsed,
//	})
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Error kinds surfaced by the conversion pipeline.
var (
	// ErrInvalidParseMode means the mode argument is neither "html" nor
	// "markdown". Always a caller bug.
	ErrInvalidParseMode = errors.New("invalid parse mode")

	// ErrDOMParse means sanitized HTML could not be parsed. The parser is
	// tolerant of malformed input, so this indicates an internal fault.
	ErrDOMParse = errors.New("parse sanitized html")

	// ErrEmptyContent means nothing renderable survived sanitization and
	// conversion.
	ErrEmptyContent = errors.New("content is empty")
)

// Converter holds the markdown renderer and sanitizer policy. Both are
// built once and never mutated, so a Converter is safe for concurrent
// use.
type Converter struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// New creates a Converter.
func New() *Converter {
	return &Converter{
		markdown: newMarkdown(),
		policy:   newPolicy(),
	}
}

var defaultConverter = New()

// Parse converts raw HTML or Markdown using a shared default Converter.
func Parse(raw string, mode Mode) (Content, error) {
	return defaultConverter.Parse(raw, mode)
}

// Normalize sanitizes raw input using a shared default Converter.
func Normalize(raw string, mode Mode) (string, error) {
	return defaultConverter.Normalize(raw, mode)
}

// Parse converts raw input into page content: bare text when the input
// carried no markup, otherwise the ordered sequence of top-level nodes.
func (c *Converter) Parse(raw string, mode Mode) (Content, error) {
	raw = strings.TrimSpace(raw)

	sanitized, err := c.Normalize(raw, mode)
	if err != nil {
		return Content{}, err
	}

	doc, err := html.Parse(strings.NewReader(sanitized))
	if err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrDOMParse, err)
	}
	body := findBody(doc)
	if body == nil {
		return Content{}, fmt.Errorf("%w: document has no body", ErrDOMParse)
	}

	nodes, err := convertChildren(body)
	if err != nil {
		return Content{}, err
	}
	if len(nodes) == 0 {
		return Content{}, ErrEmptyContent
	}

	if text, ok := bareText(nodes, mode == ModeMarkdown); ok {
		if text == "" {
			return Content{}, ErrEmptyContent
		}
		return Content{Text: text}, nil
	}

	return Content{Nodes: nodes}, nil
}

// bareText detects content that is plain text with no markup, handed
// back as a bare string: the body held only text nodes. With
// unwrapParagraph set, a single attribute-less paragraph wrapping only
// text also counts; the markdown renderer wraps plain text in one, while
// a paragraph in HTML input is markup the caller wrote.
func bareText(nodes []Node, unwrapParagraph bool) (string, bool) {
	if unwrapParagraph && len(nodes) == 1 {
		if el, ok := nodes[0].(*Element); ok && el.Tag == "p" && el.Attrs == nil {
			return bareText(el.Children, false)
		}
	}

	var b strings.Builder
	for _, n := range nodes {
		text, ok := n.(Text)
		if !ok {
			return "", false
		}
		b.WriteString(string(text))
	}
	return b.String(), true
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "body" {
			body = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return body
}
