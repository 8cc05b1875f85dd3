package handlers

import (
	"io"
	"testing"

	"github.com/app-sre/dbpedia/internal/test"
	dbpedia "github.com/app-sre/dbpedia/pkg"
	"github.com/app-sre/dbpedia/pkg/audit"
	"github.com/app-sre/dbpedia/pkg/client"
)

// testConfig points both the configured and the default endpoint at url so
// no request ever leaves the test.
func testConfig(t *testing.T, url string, w io.Writer) *dbpedia.Config {
	t.Helper()

	logger := test.DummyLogger(w).Sugar()

	return &dbpedia.Config{
		Client: client.New(
			client.WithEndpoint(url),
			client.WithDefaultEndpoint(url),
			client.WithLogger(logger),
		),
		LoggerAudit: audit.NewLoggerAudit(logger),
		Logger:      logger,
	}
}
