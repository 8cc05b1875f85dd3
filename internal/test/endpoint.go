package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Endpoint is a fake SPARQL endpoint that records the queries it receives.
type Endpoint struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
}

func NewEndpoint(t *testing.T, handler http.HandlerFunc) *Endpoint {
	t.Helper()

	e := &Endpoint{}
	e.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.queries = append(e.queries, r.URL.Query().Get("query"))
		e.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(e.Close)

	return e
}

func (e *Endpoint) Queries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string{}, e.queries...)
}

func (e *Endpoint) Requests() int {
	return len(e.Queries())
}

// Results answers every request with a result document binding the given
// subject/object pairs.
func Results(pairs ...[2]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bindings := make([]map[string]map[string]string, 0, len(pairs))
		for _, p := range pairs {
			bindings = append(bindings, map[string]map[string]string{
				"subject": {"type": "uri", "value": p[0]},
				"object":  {"type": "uri", "value": p[1]},
			})
		}

		doc := map[string]any{
			"head":    map[string]any{"vars": []string{"subject", "object"}},
			"results": map[string]any{"bindings": bindings},
		}

		w.Header().Set("Content-Type", "application/sparql-results+json")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

func Status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(code), code)
	}
}

func Body(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	}
}
