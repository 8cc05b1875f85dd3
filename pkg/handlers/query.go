package handlers

import (
	"net/http"

	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/models"
)

// Query renders the query for the request without sending it.
func Query(cfg *dbpedia.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		query := cfg.Client.Query(request.Subjects, request.Predicates, request.Options()...)
		writeJSON(cfg, w, http.StatusOK, &models.QueryResponse{Query: query})
	})
}
