package content

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// parseNodes runs HTML-mode conversion and requires a node sequence.
func parseNodes(t *testing.T, raw string) []Node {
	t.Helper()
	parsed, err := Parse(raw, ModeHTML)
	require.NoError(t, err)
	require.False(t, parsed.IsText(), "expected element content, got bare text %q", parsed.Text)
	return parsed.Nodes
}

func TestConvertHeadingRemap(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"h1", "h3"},
		{"h2", "h4"},
		{"h3", "h3"},
		{"h4", "h4"},
		{"h5", "h3"},
		{"h6", "h4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			nodes := parseNodes(t, "<"+tt.in+">Title</"+tt.in+">")
			require.Len(t, nodes, 1)
			assert.Equal(t, &Element{Tag: tt.want, Children: []Node{Text("Title")}}, nodes[0])
		})
	}
}

func TestConvertStrikethroughAlias(t *testing.T) {
	nodes := parseNodes(t, "<p><del>gone</del></p>")
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag:      "p",
		Children: []Node{&Element{Tag: "s", Children: []Node{Text("gone")}}},
	}, nodes[0])
}

func TestConvertPreCodeCollapses(t *testing.T) {
	nodes := parseNodes(t, "<pre><code>X</code></pre>")
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{Tag: "pre", Children: []Node{Text("X")}}, nodes[0])
}

func TestConvertCodeOutsidePreStaysCode(t *testing.T) {
	nodes := parseNodes(t, "<p><code>X</code></p>")
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag:      "p",
		Children: []Node{&Element{Tag: "code", Children: []Node{Text("X")}}},
	}, nodes[0])
}

func TestConvertIframeEmbedRewrite(t *testing.T) {
	nodes := parseNodes(t, `<iframe src="https://www.youtube.com/watch?v=ABC123"></iframe>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag:   "iframe",
		Attrs: &Attributes{Src: "/embed/youtube?url=" + url.QueryEscape("https://www.youtube.com/watch?v=ABC123")},
	}, nodes[0])
}

func TestConvertIframeVimeoRewrite(t *testing.T) {
	nodes := parseNodes(t, `<iframe src="https://vimeo.com/123456789"></iframe>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag:   "iframe",
		Attrs: &Attributes{Src: "/embed/vimeo?url=" + url.QueryEscape("https://vimeo.com/123456789")},
	}, nodes[0])
}

func TestConvertImgSrcNotRewritten(t *testing.T) {
	// Embed rewriting applies to iframes only, even when the URL would
	// match a platform pattern.
	nodes := parseNodes(t, `<p><img src="https://vimeo.com/123456789"/></p>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag:      "p",
		Children: []Node{&Element{Tag: "img", Attrs: &Attributes{Src: "https://vimeo.com/123456789"}}},
	}, nodes[0])
}

func TestConvertAnchorHref(t *testing.T) {
	nodes := parseNodes(t, `<p><a href="https://example.com/page">link</a></p>`)
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag: "p",
		Children: []Node{&Element{
			Tag:      "a",
			Attrs:    &Attributes{Href: "https://example.com/page"},
			Children: []Node{Text("link")},
		}},
	}, nodes[0])
}

func TestConvertHrefWinsOverSrc(t *testing.T) {
	// The sanitizer never lets both attributes through, but the converter
	// still has a deterministic rule: href is checked first.
	n := &html.Node{
		Type: html.ElementNode,
		Data: "a",
		Attr: []html.Attribute{
			{Key: "src", Val: "https://example.com/s"},
			{Key: "href", Val: "https://example.com/h"},
		},
	}
	el, err := convertElement(n)
	require.NoError(t, err)
	assert.Equal(t, &Attributes{Href: "https://example.com/h"}, el.Attrs)
}

func TestConvertUnsupportedTagIsInternalFault(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "marquee"}
	_, err := convertElement(n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marquee")
}

func TestConvertDropsInterBlockWhitespace(t *testing.T) {
	nodes := parseNodes(t, "<p>a</p>\n   \n<p>b</p>")
	require.Len(t, nodes, 2)
	assert.Equal(t, &Element{Tag: "p", Children: []Node{Text("a")}}, nodes[0])
	assert.Equal(t, &Element{Tag: "p", Children: []Node{Text("b")}}, nodes[1])
}

func TestConvertInlineTextKeptVerbatim(t *testing.T) {
	nodes := parseNodes(t, "<p>a <b>b</b></p>")
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{
		Tag: "p",
		Children: []Node{
			Text("a "),
			&Element{Tag: "b", Children: []Node{Text("b")}},
		},
	}, nodes[0])
}

func TestConvertBrHasNoChildrenField(t *testing.T) {
	nodes := parseNodes(t, "<p>a<br/>b</p>")
	require.Len(t, nodes, 1)
	p, ok := nodes[0].(*Element)
	require.True(t, ok)
	require.Len(t, p.Children, 3)

	br, ok := p.Children[1].(*Element)
	require.True(t, ok)
	assert.Equal(t, "br", br.Tag)
	assert.Nil(t, br.Children)
	assert.Nil(t, br.Attrs)
}

func TestConvertChildOrderPreserved(t *testing.T) {
	nodes := parseNodes(t, "<ol><li>one</li><li>two</li><li>three</li></ol>")
	require.Len(t, nodes, 1)
	assert.Equal(t, &Element{Tag: "ol", Children: []Node{
		&Element{Tag: "li", Children: []Node{Text("one")}},
		&Element{Tag: "li", Children: []Node{Text("two")}},
		&Element{Tag: "li", Children: []Node{Text("three")}},
	}}, nodes[0])
}
