package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/audit"
	"github.com/app-sre/dbpedia/pkg/models"
	"github.com/app-sre/dbpedia/pkg/sparql"
)

// Audit records the query a request is about to send and passes the decoded
// request on to the next handler through the request context.
func Audit(cfg *dbpedia.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			var (
				b       bytes.Buffer
				request models.QueryRequest
			)

			if s := r.Header.Get(contentLengthHeader); s == "" {
				l := fmt.Sprintf("Request without required header: %s", contentLengthHeader)
				http.Error(w, l, http.StatusBadRequest)
				return
			}

			user := requestUser(r)

			if _, err := io.Copy(&b, r.Body); err != nil {
				cfg.Logger.Errorf("Unable to copy request body: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}
			_ = r.Body.Close()

			r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

			if err := json.Unmarshal(b.Bytes(), &request); err != nil {
				cfg.Logger.Debugf("Unable to unmarshal request body: %s", err)
				h.ServeHTTP(w, r)
				return
			}

			query := &audit.QueryData{
				Query:      sparql.Build(request.Subjects, request.Predicates, request.Options()...),
				Endpoint:   cfg.Client.Endpoint(),
				Subjects:   request.Subjects,
				Predicates: request.Predicates,
				User:       user,
				Timestamp:  now.Unix(),
			}
			if err := cfg.LoggerAudit.Write(ctx, query); err != nil {
				cfg.Logger.Errorf("Unable to write audit: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			ctx = context.WithValue(ctx, ContextKeyRequest, &request)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
