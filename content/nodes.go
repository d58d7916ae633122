package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one unit of page content: either literal text or a tagged
// element. The wire form is a JSON string for text and an object for
// elements, matching what the Telegraph API expects in a content array.
type Node interface {
	node()
}

// Text is a literal text node. It carries no tag, attributes or children.
type Text string

func (Text) node() {}

// Attributes holds the single optional attribute an element may carry.
// The API never defines both on one element; href wins if a source
// element somehow carries both.
type Attributes struct {
	Href string `json:"href,omitempty"`
	Src  string `json:"src,omitempty"`
}

// Element is a tagged node. Tag is always a member of the supported
// vocabulary. Children is omitted entirely when the element has none.
type Element struct {
	Tag      string      `json:"tag"`
	Attrs    *Attributes `json:"attrs,omitempty"`
	Children []Node      `json:"children,omitempty"`
}

func (*Element) node() {}

// Content is the caller-facing result of a conversion: bare text when the
// input carried no markup, otherwise the ordered top-level nodes. Exactly
// one of the two fields is set.
type Content struct {
	Text  string
	Nodes []Node
}

// IsText reports whether the content is bare text with no markup.
func (c Content) IsText() bool { return c.Nodes == nil }

// MarshalJSON produces the wire form the API's content field expects:
// a JSON string for bare text, a node array otherwise.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Nodes == nil {
		return json.Marshal(c.Text)
	}
	return json.Marshal(c.Nodes)
}

// UnmarshalJSON reverses MarshalJSON for content returned by the API.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		c.Nodes = nil
		return json.Unmarshal(trimmed, &c.Text)
	}
	nodes, err := UnmarshalNodes(trimmed)
	if err != nil {
		return err
	}
	c.Text = ""
	c.Nodes = nodes
	return nil
}

// elementWire mirrors Element with raw children so decoding can recurse
// through the string-or-object union.
type elementWire struct {
	Tag      string            `json:"tag"`
	Attrs    *Attributes       `json:"attrs,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
}

// UnmarshalNodes decodes a content array returned by the API into the
// Node union.
func UnmarshalNodes(data []byte) ([]Node, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode content array: %w", err)
	}

	nodes := make([]Node, 0, len(raw))
	for _, item := range raw {
		node, err := unmarshalNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func unmarshalNode(data json.RawMessage) (Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode content node: empty value")
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, fmt.Errorf("decode text node: %w", err)
		}
		return Text(text), nil
	}

	var wire elementWire
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("decode element node: %w", err)
	}
	if wire.Tag == "" {
		return nil, fmt.Errorf("decode element node: missing tag")
	}

	el := &Element{Tag: wire.Tag, Attrs: wire.Attrs}
	for _, child := range wire.Children {
		converted, err := unmarshalNode(child)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, converted)
	}
	return el, nil
}
