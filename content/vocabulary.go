package content

import "sort"

// supportedTags is the closed set of element tags the Telegraph renderer
// understands. Sanitization strips everything else before conversion.
var supportedTags = map[string]bool{
	"a":          true,
	"aside":      true,
	"b":          true,
	"blockquote": true,
	"br":         true,
	"code":       true,
	"em":         true,
	"figcaption": true,
	"figure":     true,
	"h3":         true,
	"h4":         true,
	"hr":         true,
	"i":          true,
	"iframe":     true,
	"img":        true,
	"li":         true,
	"ol":         true,
	"p":          true,
	"pre":        true,
	"s":          true,
	"strong":     true,
	"u":          true,
	"ul":         true,
	"video":      true,
}

// tagAttributes maps each tag to the attributes it may carry. Tags not
// listed carry no attributes at all.
var tagAttributes = map[string][]string{
	"a":      {"href"},
	"iframe": {"src"},
	"img":    {"src"},
	"video":  {"src"},
}

// SupportedTag reports whether tag is part of the Telegraph vocabulary.
func SupportedTag(tag string) bool {
	return supportedTags[tag]
}

// TagAttributes returns the attribute names allowed on tag, or nil when
// the tag carries none.
func TagAttributes(tag string) []string {
	return tagAttributes[tag]
}

// Tags returns the vocabulary in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(supportedTags))
	for tag := range supportedTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
