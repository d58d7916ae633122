package telegraph

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/rgonek/telegraph/content"
)

// PageMarkdown renders a fetched page's content as Markdown. The page
// must have been fetched with return_content.
func PageMarkdown(page *Page) (string, error) {
	nodes, err := page.Nodes()
	if err != nil {
		return "", fmt.Errorf("telegraph: export %s: %w", page.Path, err)
	}
	if nodes == nil {
		return "", fmt.Errorf("telegraph: export %s: page has no content (fetch with return_content)", page.Path)
	}
	return NodesMarkdown(nodes)
}

// NodesMarkdown renders a node tree as Markdown by serializing it to
// HTML first.
func NodesMarkdown(nodes []content.Node) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(content.NodesToHTML(nodes))
	if err != nil {
		return "", fmt.Errorf("converting content to markdown: %w", err)
	}
	return markdown, nil
}
