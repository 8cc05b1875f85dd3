package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	dbpedia "github.com/app-sre/dbpedia/pkg"
)

const healthcheckTimeout = 5 * time.Second

func Healthcheck(cfg *dbpedia.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(healthcheckTimeout),
		healthcheck.WithChecker(
			"endpoint", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Client.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Unable to connect to the endpoint: %s", err)
						return errors.New("Unable to connect to the endpoint")
					}
					return nil
				},
			),
		),
	)
}
