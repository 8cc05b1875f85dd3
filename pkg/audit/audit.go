package audit

import (
	"context"
)

type Audit interface {
	Write(context.Context, *QueryData) error
}

// QueryData describes one query sent to Endpoint on behalf of a user.
type QueryData struct {
	Query      string
	Endpoint   string
	Subjects   []string
	Predicates []string
	User       string
	Timestamp  int64
}

func (q *QueryData) keysAndValues() []any {
	return []any{
		"Query", q.Query,
		"Endpoint", q.Endpoint,
		"Subjects", q.Subjects,
		"Predicates", q.Predicates,
		"User", q.User,
		"Timestamp", q.Timestamp,
	}
}
