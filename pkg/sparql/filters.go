package sparql

import (
	"fmt"
	"strings"

	"github.com/app-sre/dbpedia/pkg/namespace"
)

var redirectClause = `
UNION {
    ?subject <` + namespace.WikiPageRedirects + `> ?redirect .
    ?redirect ?predicate ?object
}`

const (
	inListFormat   = `FILTER (?object in (%s))`
	containsFormat = `FILTER (strstarts(str(?object), "%s"))`
)

// Filters narrows the objects matched by a query. A nil field means the
// filter was not requested; Redirect is treated as enabled when nil.
type Filters struct {
	Redirect *bool    `json:"redirect,omitempty"`
	InList   []string `json:"in_list,omitempty"`
	Contains *string  `json:"contains,omitempty"`
}

type Option func(*Filters)

// Redirect toggles matching through one wikiPageRedirects hop.
func Redirect(enabled bool) Option {
	return func(f *Filters) {
		f.Redirect = &enabled
	}
}

// InList restricts objects to the given values.
func InList(values ...string) Option {
	return func(f *Filters) {
		f.InList = append([]string{}, values...)
	}
}

// Contains restricts objects to those whose string form starts with prefix.
func Contains(prefix string) Option {
	return func(f *Filters) {
		f.Contains = &prefix
	}
}

// WithFilters replaces every filter with the ones given.
func WithFilters(filters Filters) Option {
	return func(f *Filters) {
		*f = filters
	}
}

func NewFilters(options ...Option) Filters {
	var f Filters
	for _, option := range options {
		option(&f)
	}
	return f
}

func (f Filters) RedirectEnabled() bool {
	return f.Redirect == nil || *f.Redirect
}

type filter struct {
	name    string
	present func(Filters) bool
	render  func(Filters) string
}

// The order of this list is the order clauses appear in the query.
var filterChain = []filter{
	{
		name:    "redirect",
		present: func(Filters) bool { return true },
		render:  renderRedirect,
	},
	{
		name:    "in_list",
		present: func(f Filters) bool { return f.InList != nil },
		render:  renderInList,
	},
	{
		name:    "contains",
		present: func(f Filters) bool { return f.Contains != nil },
		render:  renderContains,
	},
}

// RenderFilters returns the filter clauses of f concatenated in their fixed
// order.
func RenderFilters(f Filters) string {
	var b strings.Builder
	for _, fl := range filterChain {
		if fl.present(f) {
			b.WriteString(fl.render(f))
		}
	}
	return b.String()
}

func renderRedirect(f Filters) string {
	if !f.RedirectEnabled() {
		return ""
	}
	return redirectClause
}

func renderInList(f Filters) string {
	return fmt.Sprintf(inListFormat, strings.Join(formatItems(f.InList), ","))
}

func renderContains(f Filters) string {
	return fmt.Sprintf(containsFormat, *f.Contains)
}
