package domain

import (
	"net/url"
	"regexp"
	"strings"
)

var schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)

// NormalizeURL canonicalises a product URL for ground-truth comparison.
// It lowercases, strips the scheme and a leading "www.", drops any query
// string or fragment, and removes trailing slashes, so that
// "https://www.shl.com/x/" and "shl.com/x" compare equal.
func NormalizeURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if u == "" {
		return ""
	}
	u = schemePrefix.ReplaceAllString(u, "")
	parsed, err := url.Parse("https://" + u)
	if err != nil {
		// Unparseable input degrades to the raw trimmed string.
		return strings.TrimRight(u, "/")
	}
	return parsed.Host + strings.TrimRight(parsed.Path, "/")
}
