package cmd

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/audit"
	"github.com/app-sre/dbpedia/pkg/client"
	"github.com/app-sre/dbpedia/pkg/env/endpoint"
	"github.com/app-sre/dbpedia/pkg/handlers"
	"github.com/app-sre/dbpedia/pkg/middleware"
	"github.com/app-sre/dbpedia/pkg/version"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeoutSlack = 10 * time.Second
)

// Run starts the HTTP gateway and blocks until the server stops.
func Run(logger *zap.SugaredLogger) error {
	production := dbpedia.Production()
	logger.Infof("Starting dbpedia gateway version: %s", version.Version())

	ee := endpoint.NewEndpointEnv()
	if err := ee.Populate(); err != nil {
		return fmt.Errorf("unable to configure endpoint: %w", err)
	}
	logger.Infof("Using endpoint: %s (default endpoint: %s, timeout: %s)", ee.Endpoint, ee.DefaultEndpoint, ee.Timeout)
	if ee.IsDefault() {
		logger.Debugf("Using default endpoint, failed queries will not be retried")
	}

	requestTimeout := dbpedia.RequestTimeout()
	logger.Infof("Production: %t, request timeout: %s", production, requestTimeout)

	cfg := &dbpedia.Config{
		Client:      client.New(append(ee.Options(), client.WithLogger(logger))...),
		LoggerAudit: audit.NewLoggerAudit(logger),
		Logger:      logger,
	}

	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}

	port := dbpedia.Port()
	logger.Infof("HTTP server starting on port: %d", port)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           NewRouter(cfg, requestTimeout, defaultLogOutput, healthLogOutput),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      dbpedia.HandlerTimeout(requestTimeout, ee.Timeout) + writeTimeoutSlack,
	}
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

func NewRouter(cfg *dbpedia.Config, requestTimeout time.Duration, logOutput, healthLogOutput io.Writer) http.Handler {
	logHandler := gorillaHandlers.LoggingHandler

	chain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Timeout(cfg, requestTimeout)),
		alice.Constructor(middleware.Audit(cfg)),
	)

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/query", logHandler(logOutput, chain.Then(handlers.Query(cfg)))).Methods("POST")
	r.Handle("/objects", logHandler(logOutput, chain.Then(handlers.Objects(cfg)))).Methods("POST")
	r.Handle("/tuples", logHandler(logOutput, chain.Then(handlers.Tuples(cfg)))).Methods("POST")

	return r
}
