package dbpedia

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/dbpedia/pkg/audit"
	"github.com/app-sre/dbpedia/pkg/client"
	"github.com/app-sre/dbpedia/pkg/env"
)

const (
	defaultRequestTimeout = 2 * time.Minute
	defaultPort           = 8080

	// Left on top of two endpoint attempts to decode and write the response.
	timeoutHeadroom = 1 * time.Second
)

type Config struct {
	Client      *client.Client
	LoggerAudit *audit.LoggerAudit
	Logger      *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := env.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

func Port() int {
	if s := os.Getenv("PORT"); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p > 0 && p < 65536 {
			return p
		}
	}
	return defaultPort
}

// HandlerTimeout returns how long a gateway request may run. The result is
// never shorter than two endpoint attempts of attemptTimeout each, since a
// failed call to the configured endpoint is followed by one call to the
// default endpoint.
func HandlerTimeout(requestTimeout, attemptTimeout time.Duration) time.Duration {
	if minimum := 2*attemptTimeout + timeoutHeadroom; requestTimeout < minimum {
		return minimum
	}
	return requestTimeout
}
