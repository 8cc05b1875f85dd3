package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app-sre/dbpedia/internal/test"
	"github.com/app-sre/dbpedia/pkg/namespace"
	"github.com/app-sre/dbpedia/pkg/results"
	"github.com/app-sre/dbpedia/pkg/sparql"
)

var (
	testSubjects   = []string{"http://dbpedia.org/resource/Dublin", "http://dbpedia.org/resource/Berlin"}
	testPredicates = []string{namespace.RDFType}
	testPairs      = [][2]string{
		{"http://dbpedia.org/resource/Dublin", "http://dbpedia.org/ontology/City"},
		{"http://dbpedia.org/resource/Dublin", "http://dbpedia.org/ontology/Place"},
		{"http://dbpedia.org/resource/Berlin", "http://dbpedia.org/ontology/City"},
	}
)

func slow(delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(delay):
		}
	}
}

func closedEndpoint(t *testing.T) string {
	e := test.NewEndpoint(t, test.Status(http.StatusOK))
	e.Close()
	return e.URL
}

func TestNew(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       []Option
		endpoint    string
		fallback    string
		timeout     time.Duration
	}{
		{
			"without using any options",
			nil,
			namespace.DefaultEndpoint,
			namespace.DefaultEndpoint,
			120 * time.Second,
		},
		{
			"using custom endpoint and timeout",
			[]Option{WithEndpoint("http://localhost:8890/sparql"), WithTimeout(5 * time.Second)},
			"http://localhost:8890/sparql",
			namespace.DefaultEndpoint,
			5 * time.Second,
		},
		{
			"using options with empty values",
			[]Option{WithEndpoint(""), WithDefaultEndpoint(""), WithTimeout(0)},
			namespace.DefaultEndpoint,
			namespace.DefaultEndpoint,
			120 * time.Second,
		},
		{
			"using custom default endpoint",
			[]Option{WithDefaultEndpoint("http://mirror/sparql")},
			namespace.DefaultEndpoint,
			"http://mirror/sparql",
			120 * time.Second,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			actual := New(tc.given...)

			require.NotNil(t, actual)
			assert.Equal(t, tc.endpoint, actual.Endpoint())
			assert.Equal(t, tc.fallback, actual.DefaultEndpoint())
			assert.Equal(t, tc.timeout, actual.Timeout())
		})
	}
}

func TestExecute(t *testing.T) {
	t.Parallel()

	primary := test.NewEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Contains(t, r.Header.Get("User-Agent"), "dbpedia/")
		test.Results(testPairs...)(w, r)
	})

	c := New(WithEndpoint(primary.URL), WithDefaultEndpoint(closedEndpoint(t)))
	actual, err := c.Execute(context.Background(), testSubjects, testPredicates, sparql.Redirect(false))

	require.NoError(t, err)
	assert.Equal(t, len(testPairs), actual.Len())
	assert.Equal(t, []string{sparql.Build(testSubjects, testPredicates, sparql.Redirect(false))}, primary.Queries())
}

func TestExecuteEndpointWithParameters(t *testing.T) {
	t.Parallel()

	primary := test.NewEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "http://dbpedia.org", r.URL.Query().Get("default-graph-uri"))
		test.Results()(w, r)
	})

	c := New(WithEndpoint(primary.URL + "?default-graph-uri=http%3A%2F%2Fdbpedia.org"))
	_, err := c.Execute(context.Background(), testSubjects, testPredicates)

	require.NoError(t, err)
	assert.Equal(t, 1, primary.Requests())
}

func TestExecuteFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		primary     http.HandlerFunc
		timeout     time.Duration
	}{
		{
			"primary endpoint answering with server error",
			test.Status(http.StatusInternalServerError),
			time.Second,
		},
		{
			"primary endpoint answering with client error",
			test.Status(http.StatusBadRequest),
			time.Second,
		},
		{
			"primary endpoint exceeding timeout",
			slow(5 * time.Second),
			200 * time.Millisecond,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var output bytes.Buffer

			primary := test.NewEndpoint(t, tc.primary)
			fallback := test.NewEndpoint(t, test.Results(testPairs...))

			c := New(
				WithEndpoint(primary.URL),
				WithDefaultEndpoint(fallback.URL),
				WithTimeout(tc.timeout),
				WithLogger(test.DummyLogger(&output).Sugar()),
			)
			actual, err := c.GetObjects(context.Background(), testSubjects, testPredicates)

			require.NoError(t, err)
			assert.Equal(t, []string{
				"http://dbpedia.org/ontology/City",
				"http://dbpedia.org/ontology/Place",
				"http://dbpedia.org/ontology/City",
			}, actual)
			assert.Equal(t, 1, primary.Requests())
			assert.Equal(t, primary.Queries(), fallback.Queries())
			assert.Contains(t, output.String(), "Call to endpoint failed with an expected error")
			assert.Contains(t, output.String(), primary.URL)
			assert.Contains(t, output.String(), "http://dbpedia.org/resource/Dublin")
			assert.Contains(t, output.String(), "wikiPageRedirects")
		})
	}
}

func TestExecuteFallbackConnectionRefused(t *testing.T) {
	t.Parallel()

	fallback := test.NewEndpoint(t, test.Results(testPairs...))

	c := New(WithEndpoint(closedEndpoint(t)), WithDefaultEndpoint(fallback.URL))
	actual, err := c.GetSubjectObjectTuples(context.Background(), testSubjects, testPredicates)

	require.NoError(t, err)
	assert.Equal(t, []results.Pair{
		{Subject: "http://dbpedia.org/resource/Dublin", Object: "http://dbpedia.org/ontology/City"},
		{Subject: "http://dbpedia.org/resource/Dublin", Object: "http://dbpedia.org/ontology/Place"},
		{Subject: "http://dbpedia.org/resource/Berlin", Object: "http://dbpedia.org/ontology/City"},
	}, actual)
	assert.Equal(t, 1, fallback.Requests())
}

func TestExecuteDefaultEndpointFailure(t *testing.T) {
	t.Parallel()

	primary := test.NewEndpoint(t, test.Status(http.StatusServiceUnavailable))

	c := New(WithEndpoint(primary.URL), WithDefaultEndpoint(primary.URL))
	actual, err := c.Execute(context.Background(), testSubjects, testPredicates)

	assert.Nil(t, actual)
	require.Error(t, err)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, primary.URL, transport.Endpoint)

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusServiceUnavailable, status.StatusCode)

	assert.Contains(t, err.Error(), "unable to query endpoint")
	assert.Contains(t, err.Error(), "503 Service Unavailable")
	assert.Equal(t, 1, primary.Requests())
}

func TestExecuteFallbackFailure(t *testing.T) {
	t.Parallel()

	primary := test.NewEndpoint(t, test.Status(http.StatusInternalServerError))
	fallback := test.NewEndpoint(t, test.Status(http.StatusBadGateway))

	c := New(WithEndpoint(primary.URL), WithDefaultEndpoint(fallback.URL))
	_, err := c.Execute(context.Background(), testSubjects, testPredicates)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, fallback.URL, transport.Endpoint)

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusBadGateway, status.StatusCode)

	assert.Equal(t, 1, primary.Requests())
	assert.Equal(t, 1, fallback.Requests())
}

func TestExecuteCancelled(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	primary := test.NewEndpoint(t, slow(5*time.Second))
	fallback := test.NewEndpoint(t, test.Results(testPairs...))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	c := New(
		WithEndpoint(primary.URL),
		WithDefaultEndpoint(fallback.URL),
		WithTimeout(5*time.Second),
		WithLogger(test.DummyLogger(&output).Sugar()),
	)
	_, err := c.Execute(ctx, testSubjects, testPredicates)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, primary.URL, transport.Endpoint)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, 0, fallback.Requests())
	assert.NotContains(t, output.String(), "Retrying query using default endpoint")
}

func TestExecuteMalformedResponse(t *testing.T) {
	t.Parallel()

	primary := test.NewEndpoint(t, test.Body("text/html", "<html>Not JSON</html>"))
	fallback := test.NewEndpoint(t, test.Results(testPairs...))

	c := New(WithEndpoint(primary.URL), WithDefaultEndpoint(fallback.URL))
	_, err := c.Execute(context.Background(), testSubjects, testPredicates)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to decode query results")

	var transport *TransportError
	assert.False(t, errors.As(err, &transport))
	assert.Equal(t, 0, fallback.Requests())
}

func TestExecuteInvalidEndpoint(t *testing.T) {
	t.Parallel()

	fallback := test.NewEndpoint(t, test.Results(testPairs...))

	c := New(WithEndpoint("http://[::1"), WithDefaultEndpoint(fallback.URL))
	_, err := c.Execute(context.Background(), testSubjects, testPredicates)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse endpoint")
	assert.Equal(t, 0, fallback.Requests())
}

func TestExecuteMissingVariable(t *testing.T) {
	t.Parallel()

	primary := test.NewEndpoint(t, test.Body("application/json", `{"results":{"bindings":[{"subject":{"value":"x"}}]}}`))

	c := New(WithEndpoint(primary.URL))
	_, err := c.GetObjects(context.Background(), testSubjects, testPredicates)

	var missing *results.MissingVariableError
	require.ErrorAs(t, err, &missing)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	c := New()

	assert.Equal(t,
		sparql.Build(testSubjects, testPredicates, sparql.Contains(namespace.Ontology)),
		c.Query(testSubjects, testPredicates, sparql.Contains(namespace.Ontology)),
	)
}

func TestPing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		handler     http.HandlerFunc
		error       bool
		want        string
	}{
		{
			"endpoint answering with success",
			test.Status(http.StatusOK),
			false,
			``,
		},
		{
			"endpoint answering with client error",
			test.Status(http.StatusBadRequest),
			false,
			``,
		},
		{
			"endpoint answering with server error",
			test.Status(http.StatusInternalServerError),
			true,
			`500 Internal Server Error`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			e := test.NewEndpoint(t, tc.handler)
			err := New(WithEndpoint(e.URL)).Ping(context.Background())

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.want)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPingUnreachable(t *testing.T) {
	t.Parallel()

	err := New(WithEndpoint(closedEndpoint(t)), WithHTTPClient(&http.Client{})).Ping(context.Background())

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
}

func TestTransportErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := io.ErrUnexpectedEOF
	err := &TransportError{Endpoint: "http://localhost", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "unable to query endpoint http://localhost: unexpected EOF", err.Error())
}
