// Package sparql renders the single query shape used against the knowledge
// base: a VALUES-bound set of subjects and predicates matched against
// ?subject ?predicate ?object, optionally followed through redirects and
// narrowed by filter clauses.
package sparql
