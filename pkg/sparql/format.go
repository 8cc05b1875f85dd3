package sparql

import (
	"net/url"
	"strings"

	"github.com/app-sre/dbpedia/pkg/namespace"
)

const upperhex = "0123456789ABCDEF"

var resourceBase = mustParse(namespace.Resource)

func mustParse(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Canonicalize turns a resource name or a resource IRI into an absolute,
// percent-encoded resource IRI.
func Canonicalize(subject string) string {
	raw := strings.ReplaceAll(subject, namespace.Resource, "")
	ref := &url.URL{Path: raw, RawPath: escapePath(raw)}
	return resourceBase.ResolveReference(ref).String()
}

// FormatItem wraps anything that looks like an absolute IRI in angle brackets
// so it can be embedded in a query. Prefixed names are returned as is.
func FormatItem(item string) string {
	if strings.Contains(item, "http") {
		return "<" + item + ">"
	}
	return item
}

func formatItems(items []string) []string {
	formatted := make([]string, 0, len(items))
	for _, item := range items {
		formatted = append(formatted, FormatItem(item))
	}
	return formatted
}

// escapePath keeps unreserved characters and the path separator, everything
// else is written as %XX of its UTF-8 bytes.
func escapePath(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '.', '-', '~', '/':
		return true
	}
	return false
}
