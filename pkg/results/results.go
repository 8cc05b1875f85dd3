package results

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	VariableSubject = "subject"
	VariableObject  = "object"
)

// Table is a SPARQL JSON result document.
type Table struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Binding maps query variables to the terms bound in one result row.
type Binding map[string]Term

type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

type Pair struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
}

type MissingVariableError struct {
	Row      int
	Variable string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("unable to find variable %q in result row: %d", e.Variable, e.Row)
}

func Decode(r io.Reader) (*Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("unable to decode query results: %w", err)
	}
	return &t, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Results.Bindings)
}

// Objects returns the object value of every row, in row order.
func Objects(t *Table) ([]string, error) {
	objects := make([]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		object, err := value(t.Results.Bindings[i], i, VariableObject)
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
	}
	return objects, nil
}

// SubjectObjectTuples returns one pair per row, in row order.
func SubjectObjectTuples(t *Table) ([]Pair, error) {
	pairs := make([]Pair, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		b := t.Results.Bindings[i]

		subject, err := value(b, i, VariableSubject)
		if err != nil {
			return nil, err
		}
		object, err := value(b, i, VariableObject)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Subject: subject, Object: object})
	}
	return pairs, nil
}

func value(b Binding, row int, variable string) (string, error) {
	term, found := b[variable]
	if !found {
		return "", &MissingVariableError{Row: row, Variable: variable}
	}
	return term.Value, nil
}
