package handlers

import (
	"net/http"

	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/models"
	"github.com/app-sre/dbpedia/pkg/results"
)

func Tuples(cfg *dbpedia.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request, err := decodeRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		pairs, err := cfg.Client.GetSubjectObjectTuples(r.Context(), request.Subjects, request.Predicates, request.Options()...)
		if err != nil {
			cfg.Logger.Errorf("Unable to query subject and object pairs: %s", err)
			writeJSON(cfg, w, errorStatus(err), &models.TuplesResponse{Result: []results.Pair{}, Error: err.Error()})
			return
		}

		writeJSON(cfg, w, http.StatusOK, &models.TuplesResponse{Result: pairs})
	})
}
