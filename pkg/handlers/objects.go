package handlers

import (
	"net/http"

	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/models"
)

func Objects(cfg *dbpedia.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		objects, err := cfg.Client.GetObjects(r.Context(), request.Subjects, request.Predicates, request.Options()...)
		if err != nil {
			cfg.Logger.Errorf("Unable to query objects: %s", err)
			writeJSON(cfg, w, errorStatus(err), &models.ObjectsResponse{Result: []string{}, Error: err.Error()})
			return
		}

		writeJSON(cfg, w, http.StatusOK, &models.ObjectsResponse{Result: objects})
	})
}
