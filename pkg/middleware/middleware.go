package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/app-sre/dbpedia/pkg/models"
)

type ctxKey string

const (
	ContextKeyUser    ctxKey = "user"
	ContextKeyRequest ctxKey = "request"
)

const (
	contentLengthHeader = "Content-Length"
	forwardedUserHeader = "X-Forwarded-User"

	anonymousUser = "anonymous"
)

type Middleware func(http.Handler) http.Handler

// requestUser prefers a user already set on the context over the forwarded
// header.
func requestUser(r *http.Request) string {
	if u, ok := r.Context().Value(ContextKeyUser).(string); ok && u != "" {
		return u
	}
	if u := r.Header.Get(forwardedUserHeader); u != "" {
		return u
	}
	return anonymousUser
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(&models.ErrorResponse{Error: message})
}
