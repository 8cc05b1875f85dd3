package endpoint

import (
	"net/url"
	"os"
	"time"

	"github.com/app-sre/dbpedia/pkg/client"
	"github.com/app-sre/dbpedia/pkg/env"
	"github.com/app-sre/dbpedia/pkg/namespace"
)

const (
	endpointKey        = "DBPEDIA_ENDPOINT"
	defaultEndpointKey = "DBPEDIA_DEFAULT_ENDPOINT"
	timeoutKey         = "DBPEDIA_TIMEOUT"
)

type Env struct {
	Endpoint        string
	DefaultEndpoint string
	Timeout         time.Duration
}

func NewEndpointEnv() *Env {
	return &Env{}
}

func (e *Env) Populate() error {
	e.Endpoint = namespace.DefaultEndpoint
	if s := os.Getenv(endpointKey); s != "" {
		if !isValidURL(s) {
			return &env.TypeError{Name: endpointKey}
		}
		e.Endpoint = s
	}

	e.DefaultEndpoint = namespace.DefaultEndpoint
	if s := os.Getenv(defaultEndpointKey); s != "" {
		if !isValidURL(s) {
			return &env.TypeError{Name: defaultEndpointKey}
		}
		e.DefaultEndpoint = s
	}

	e.Timeout = client.DefaultTimeout
	if s := os.Getenv(timeoutKey); s != "" {
		d, err := env.ParseDuration(s)
		if err != nil || d == 0 {
			return &env.TypeError{Name: timeoutKey}
		}
		e.Timeout = d
	}

	return nil
}

// IsDefault reports whether queries go to the default endpoint directly, in
// which case a failed call has nothing to fall back to.
func (e *Env) IsDefault() bool {
	return e.Endpoint == e.DefaultEndpoint
}

func (e *Env) Options() []client.Option {
	return []client.Option{
		client.WithEndpoint(e.Endpoint),
		client.WithDefaultEndpoint(e.DefaultEndpoint),
		client.WithTimeout(e.Timeout),
	}
}

func isValidURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
