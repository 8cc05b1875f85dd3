// Package results decodes SPARQL JSON result documents and reshapes their
// ?subject ?object bindings into flat value lists or subject/object pairs.
package results
