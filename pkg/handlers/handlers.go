package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/client"
	"github.com/app-sre/dbpedia/pkg/middleware"
	"github.com/app-sre/dbpedia/pkg/models"
)

var errMissingTerms = errors.New("request requires at least one subject and one predicate")

func decodeRequest(r *http.Request) (*models.QueryRequest, error) {
	if request, ok := r.Context().Value(middleware.ContextKeyRequest).(*models.QueryRequest); ok && request != nil {
		return request, validate(request)
	}

	var request models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("unable to decode request body: %w", err)
	}

	return &request, validate(&request)
}

func validate(request *models.QueryRequest) error {
	if len(request.Subjects) == 0 || len(request.Predicates) == 0 {
		return errMissingTerms
	}
	return nil
}

// errorStatus maps a client failure to the status returned by the gateway.
func errorStatus(err error) int {
	var transport *client.TransportError
	if errors.As(err, &transport) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(cfg *dbpedia.Config, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		cfg.Logger.Errorf("Unable to encode response: %s", err)
	}
}
