package models

import (
	"github.com/app-sre/dbpedia/pkg/results"
	"github.com/app-sre/dbpedia/pkg/sparql"
)

type QueryRequest struct {
	Subjects   []string       `json:"subjects"`
	Predicates []string       `json:"predicates"`
	Filters    sparql.Filters `json:"filters"`
}

func (q *QueryRequest) Options() []sparql.Option {
	return []sparql.Option{sparql.WithFilters(q.Filters)}
}

type QueryResponse struct {
	Query string `json:"query"`
}

type ObjectsResponse struct {
	Result []string `json:"result"`
	Error  string   `json:"error"`
}

type TuplesResponse struct {
	Result []results.Pair `json:"result"`
	Error  string         `json:"error"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
