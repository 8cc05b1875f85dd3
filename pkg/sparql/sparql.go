package sparql

import (
	"strings"
)

const queryTemplate = `SELECT ?subject ?object
WHERE {
    VALUES ?subject { {subjects} }
    VALUES ?predicate { {predicates} }
    { ?subject ?predicate ?object }
    {filters}
}`

// Build renders the subject/object query for the given subjects and
// predicates. Subjects are canonicalized into resource IRIs first.
func Build(subjects, predicates []string, options ...Option) string {
	formatted := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		formatted = append(formatted, FormatItem(Canonicalize(subject)))
	}

	return render(
		strings.Join(formatted, " "),
		strings.Join(formatItems(predicates), " "),
		RenderFilters(NewFilters(options...)),
	)
}

func render(subjects, predicates, filters string) string {
	r := strings.NewReplacer(
		"{subjects}", subjects,
		"{predicates}", predicates,
		"{filters}", filters,
	)
	return r.Replace(queryTemplate)
}
