// Package client sends subject/object queries to a SPARQL endpoint over HTTP
// and reshapes the results. A failed call against a custom endpoint is
// retried once against the public DBpedia endpoint.
package client
