package middleware

import (
	"net/http"
	"time"

	dbpedia "github.com/app-sre/dbpedia/pkg"
)

const timeoutMessage = `{"error":"Request timed out"}`

// Timeout bounds the whole request. The bound is widened when requestTimeout
// cannot hold a call to the configured endpoint followed by a call to the
// default one.
func Timeout(cfg *dbpedia.Config, requestTimeout time.Duration) Middleware {
	timeout := dbpedia.HandlerTimeout(requestTimeout, cfg.Client.Timeout())
	if timeout != requestTimeout {
		cfg.Logger.Infof("Request timeout %s is shorter than two endpoint calls, using: %s", requestTimeout, timeout)
	}

	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, timeoutMessage)
	}
}
