package telegraph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgonek/telegraph/content"
)

func TestNodesMarkdown(t *testing.T) {
	nodes := []content.Node{
		&content.Element{Tag: "h3", Children: []content.Node{content.Text("Title")}},
		&content.Element{Tag: "p", Children: []content.Node{
			content.Text("see "),
			&content.Element{
				Tag:      "a",
				Attrs:    &content.Attributes{Href: "https://example.com"},
				Children: []content.Node{content.Text("the docs")},
			},
		}},
	}

	markdown, err := NodesMarkdown(nodes)
	if err != nil {
		t.Fatalf("NodesMarkdown: %v", err)
	}
	if !strings.Contains(markdown, "### Title") {
		t.Errorf("missing heading in %q", markdown)
	}
	if !strings.Contains(markdown, "[the docs](https://example.com)") {
		t.Errorf("missing link in %q", markdown)
	}
}

func TestPageMarkdownRequiresContent(t *testing.T) {
	page := &Page{Path: "Sample-12-15"}
	if _, err := PageMarkdown(page); err == nil {
		t.Error("expected error for page without content")
	}
}

func TestPageMarkdown(t *testing.T) {
	raw, err := json.Marshal([]content.Node{
		&content.Element{Tag: "p", Children: []content.Node{
			&content.Element{Tag: "b", Children: []content.Node{content.Text("bold")}},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	page := &Page{Path: "Sample-12-15", Content: raw}
	markdown, err := PageMarkdown(page)
	if err != nil {
		t.Fatalf("PageMarkdown: %v", err)
	}
	if !strings.Contains(markdown, "**bold**") {
		t.Errorf("missing bold in %q", markdown)
	}
}
