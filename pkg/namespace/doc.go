// Package namespace holds the IRIs used to talk to the DBpedia knowledge
// base: the resource and ontology prefixes, the public SPARQL endpoint and a
// handful of predicates that are commonly queried.
package namespace
