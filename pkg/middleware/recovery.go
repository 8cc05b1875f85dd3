package middleware

import (
	"errors"
	"net/http"

	dbpedia "github.com/app-sre/dbpedia/pkg"
)

const internalErrorMessage = "An internal error has occurred"

func Recovery(cfg *dbpedia.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					err, ok := v.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorf("Recovered from an error while handling %s: %s", r.URL.Path, v)
					writeError(w, http.StatusInternalServerError, internalErrorMessage)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
