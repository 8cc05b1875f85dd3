package namespace

const (
	DefaultEndpoint = "http://dbpedia.org/sparql"

	Resource = "http://dbpedia.org/resource/"
	Ontology = "http://dbpedia.org/ontology/"
	Property = "http://dbpedia.org/property/"

	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	FOAF = "http://xmlns.com/foaf/0.1/"
)

const (
	RDFType     = RDF + "type"
	RDFSLabel   = RDFS + "label"
	RDFSComment = RDFS + "comment"
	OWLSameAs   = OWL + "sameAs"
	FOAFName    = FOAF + "name"

	WikiPageRedirects     = Ontology + "wikiPageRedirects"
	WikiPageDisambiguates = Ontology + "wikiPageDisambiguates"
	Abstract              = Ontology + "abstract"
)
