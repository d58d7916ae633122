package content

import (
	"net/url"
	"regexp"
)

// embedPattern describes one media platform whose URLs are rewritten to
// the embed proxy path. When canonical is nil the original URL is
// re-embedded verbatim; otherwise the submatches are collapsed into a
// canonical URL first (platforms with many equivalent textual forms).
type embedPattern struct {
	site      string
	re        *regexp.Regexp
	canonical func(match []string) string
}

// embedPatterns is tried in order and the first match wins. The order
// (twitter, youtube, vimeo, telegram) is a fixed tie-break carried over
// from the renderer's contract; a URL crafted to match two families
// resolves by position alone.
var embedPatterns = []embedPattern{
	{
		site: "twitter",
		re:   regexp.MustCompile(`^https?://(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]{1,15}/status(?:es)?/\d+`),
	},
	{
		site: "youtube",
		re: regexp.MustCompile(`^https?://(?:www\.)?youtube(?:-nocookie)?\.com/(?:watch\?v=|embed/)([A-Za-z0-9_-]+)` +
			`|^https?://youtu\.be/([A-Za-z0-9_-]+)`),
		canonical: func(match []string) string {
			id := match[1]
			if id == "" {
				id = match[2]
			}
			return "https://www.youtube.com/watch?v=" + id
		},
	},
	{
		site: "vimeo",
		re:   regexp.MustCompile(`^https?://(?:www\.|player\.)?vimeo\.com/(?:video/)?(\d+)`),
		canonical: func(match []string) string {
			return "https://vimeo.com/" + match[len(match)-1]
		},
	},
	{
		site: "telegram",
		re:   regexp.MustCompile(`^https?://t\.me/[A-Za-z0-9_]+/\d+`),
	},
}

// rewriteEmbedURL maps a known media URL onto the internal embed proxy
// path. URLs matching no platform pass through untouched; this is a pure,
// total function with no error path.
func rewriteEmbedURL(raw string) string {
	for _, pattern := range embedPatterns {
		match := pattern.re.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		target := raw
		if pattern.canonical != nil {
			target = pattern.canonical(match)
		}
		return "/embed/" + pattern.site + "?url=" + url.QueryEscape(target)
	}
	return raw
}
