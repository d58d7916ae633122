package content

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// convertChildren walks parent's children in document order and collects
// the converted nodes. Text that trims to nothing is dropped, so
// formatting whitespace between block elements never becomes a node.
func convertChildren(parent *html.Node) ([]Node, error) {
	var children []Node
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		converted, err := convertNode(child)
		if err != nil {
			return nil, err
		}
		if converted == nil {
			continue
		}
		if text, ok := converted.(Text); ok && strings.TrimSpace(string(text)) == "" {
			continue
		}
		children = append(children, converted)
	}
	return children, nil
}

// convertNode maps one parsed HTML node onto the Node union. Comments and
// doctypes contribute nothing and return nil.
func convertNode(n *html.Node) (Node, error) {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data), nil
	case html.ElementNode:
		return convertElement(n)
	default:
		return nil, nil
	}
}

func convertElement(n *html.Node) (*Element, error) {
	tag := strings.ToLower(n.Data)

	// code inside pre is renamed to pre, and a pre whose sole child is a
	// code element collapses to a single pre node: the renderer shows the
	// literal pair as a doubly-boxed block otherwise.
	if tag == "code" && parentTag(n) == "pre" {
		tag = "pre"
	}
	if tag == "pre" && strings.ToLower(n.Data) == "pre" {
		if code := soleCodeChild(n); code != nil {
			n = code
		}
	}

	// The sanitizer guarantees vocabulary-only input. Anything else here
	// is a normalizer defect, not a value to emit.
	if !SupportedTag(tag) {
		return nil, fmt.Errorf("convert: unsupported tag %q leaked past sanitization", tag)
	}

	el := &Element{Tag: tag}
	if href, ok := attrValue(n, "href"); ok {
		el.Attrs = &Attributes{Href: href}
	} else if src, ok := attrValue(n, "src"); ok {
		if tag == "iframe" {
			src = rewriteEmbedURL(src)
		}
		el.Attrs = &Attributes{Src: src}
	}

	children, err := convertChildren(n)
	if err != nil {
		return nil, err
	}
	el.Children = children

	return el, nil
}

// soleCodeChild returns the code element when it is the only meaningful
// child of n, ignoring whitespace-only text around it.
func soleCodeChild(n *html.Node) *html.Node {
	var code *html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if strings.ToLower(child.Data) != "code" || code != nil {
				return nil
			}
			code = child
		default:
		}
	}
	return code
}

func parentTag(n *html.Node) string {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Parent.Data)
}

func attrValue(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}
