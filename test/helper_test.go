//go:build integration
// +build integration

package test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/orlangure/gnomock"
	"github.com/stretchr/testify/require"
)

const (
	virtuosoImage    = "openlink/virtuoso-opensource-7:7.2"
	virtuosoPort     = 8890
	virtuosoPassword = "dba"
)

func sparqlEndpoint(c *gnomock.Container) string {
	return fmt.Sprintf("http://%s/sparql", c.DefaultAddress())
}

func virtuosoHealthcheck(ctx context.Context, c *gnomock.Container) error {
	u := sparqlEndpoint(c) + "?" + url.Values{"query": []string{"ASK {}"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status: %s", resp.Status)
	}
	return nil
}

func startVirtuoso(t *testing.T) *gnomock.Container {
	t.Helper()

	virtuoso, err := gnomock.StartCustom(virtuosoImage, gnomock.DefaultTCP(virtuosoPort),
		gnomock.WithEnv("DBA_PASSWORD="+virtuosoPassword),
		gnomock.WithHealthCheck(virtuosoHealthcheck),
		gnomock.WithTimeout(3*time.Minute),
		gnomock.WithUseLocalImagesFirst(),
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(virtuoso) })

	return virtuoso
}

// closedEndpoint returns the URL of an endpoint nothing listens on.
func closedEndpoint(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	address := l.Addr().String()
	require.NoError(t, l.Close())

	return fmt.Sprintf("http://%s/sparql", address)
}

func setEnvironment(t *testing.T, endpoint, defaultEndpoint string, port int) {
	t.Setenv("DBPEDIA_ENDPOINT", endpoint)
	t.Setenv("DBPEDIA_DEFAULT_ENDPOINT", defaultEndpoint)
	t.Setenv("DBPEDIA_TIMEOUT", "30")
	t.Setenv("PORT", strconv.Itoa(port))

	_ = os.Unsetenv("ENVIRONMENT")
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	return l.Addr().(*net.TCPAddr).Port
}

func waitForPortOpen(port int) {
	address := net.JoinHostPort("localhost", strconv.Itoa(port))
	for {
		conn, err := net.DialTimeout("tcp", address, 500*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
}
