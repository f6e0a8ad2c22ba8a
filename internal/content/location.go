package content

import (
	"net/url"
	"regexp"
	"strings"
)

// statusPattern extracts the post ID from a detail-page path such as
// /handle/status/1234567890 or /handle/statuses/1234567890.
var statusPattern = regexp.MustCompile(`/status(?:es)?/(\d+)`)

// ParsePostURL extracts the target post identity from a page location.
// The author handle is the first path segment. ok is false when the
// location is not a post detail page.
func ParsePostURL(raw string) (id, author string, ok bool) {
	if raw == "" {
		return "", "", false
	}

	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}

	m := statusPattern.FindStringSubmatch(path)
	if m == nil {
		return "", "", false
	}
	id = m[1]

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) > 0 {
		author = segments[0]
	}

	return id, author, true
}

// IsPostDetailURL reports whether the location points at a single post.
func IsPostDetailURL(raw string) bool {
	_, _, ok := ParsePostURL(raw)
	return ok
}
