package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mode selects how raw input is interpreted.
type Mode string

const (
	ModeHTML     Mode = "html"
	ModeMarkdown Mode = "markdown"
)

// ParseMode validates a caller-supplied mode string. Surrounding
// whitespace is trimmed and the comparison is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeHTML, ModeMarkdown:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidParseMode, s)
	}
}

// renamedTags maps tags outside the vocabulary onto their supported
// equivalents: the renderer knows only two heading sizes, and del is an
// alias for s. Applied once, here in the normalizer; the tree converter
// assumes final tag names.
var renamedTags = map[string]string{
	"h1":  "h3",
	"h2":  "h4",
	"h5":  "h3",
	"h6":  "h4",
	"del": "s",
}

// newPolicy builds the sanitizer policy from the tag vocabulary. Elements
// outside the vocabulary are stripped (script and style together with
// their text content, per bluemonday's defaults); attributes are limited
// to the per-tag allow-list.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(Tags()...)
	for _, tag := range Tags() {
		if attrs := TagAttributes(tag); len(attrs) > 0 {
			policy.AllowAttrs(attrs...).OnElements(tag)
		}
	}
	policy.AllowURLSchemes("http", "https", "mailto", "tg")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	return policy
}

// Normalize renders markdown input to HTML and sanitizes either mode down
// to vocabulary-only markup. The output is the safety boundary: past this
// point only supported tags and allow-listed attributes exist.
func (c *Converter) Normalize(raw string, mode Mode) (string, error) {
	switch mode {
	case ModeHTML, ModeMarkdown:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidParseMode, string(mode))
	}

	markup := raw
	if mode == ModeMarkdown {
		var buf bytes.Buffer
		if err := c.markdown.Convert([]byte(raw), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		markup = buf.String()
	}

	renamed, err := renameTags(markup)
	if err != nil {
		return "", err
	}

	return c.policy.Sanitize(renamed), nil
}

// renameTags rewrites the heading and strikethrough aliases before
// sanitization so their content survives the vocabulary filter under the
// final tag name.
func renameTags(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDOMParse, err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if to, ok := renamedTags[strings.ToLower(n.Data)]; ok {
				n.Data = to
				n.DataAtom = atom.Lookup([]byte(to))
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render renamed tree: %w", err)
	}
	return buf.String(), nil
}

// newMarkdown builds the renderer with raw HTML passed through: markdown
// documents may embed iframes and other markup, and the sanitizer
// downstream owns the filtering.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)
}
