package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/app-sre/dbpedia/pkg/client"
	"github.com/app-sre/dbpedia/pkg/env/endpoint"
	"github.com/app-sre/dbpedia/pkg/sparql"
)

// QueryOptions holds the flags shared by the query, objects and tuples
// commands.
type QueryOptions struct {
	*RootOptions

	Subjects        []string
	Predicates      []string
	InList          []string
	Contains        string
	NoRedirect      bool
	Endpoint        string
	DefaultEndpoint string
	Timeout         time.Duration
}

func addQueryFlags(cmd *cobra.Command, opts *QueryOptions) {
	cmd.Flags().StringArrayVarP(&opts.Subjects, "subject", "s", nil, "subject resource name or IRI (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Predicates, "predicate", "p", nil, "predicate IRI or prefixed name (repeatable)")
	cmd.Flags().StringArrayVar(&opts.InList, "in", nil, "only match objects equal to one of these values (repeatable)")
	cmd.Flags().StringVar(&opts.Contains, "contains", "", "only match objects starting with this text")
	cmd.Flags().BoolVar(&opts.NoRedirect, "no-redirect", false, "do not follow wikiPageRedirects")

	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("predicate")
}

func addEndpointFlags(cmd *cobra.Command, opts *QueryOptions) {
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "SPARQL endpoint (default $DBPEDIA_ENDPOINT or the public endpoint)")
	cmd.Flags().StringVar(&opts.DefaultEndpoint, "default-endpoint", "", "endpoint used when the first call fails (default $DBPEDIA_DEFAULT_ENDPOINT or the public endpoint)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "timeout of each call (default $DBPEDIA_TIMEOUT or 2m0s)")
}

// Options returns the filter options selected on the command line. Filters
// whose flags were not given are left unset.
func (o *QueryOptions) Options(cmd *cobra.Command) []sparql.Option {
	options := []sparql.Option{sparql.Redirect(!o.NoRedirect)}
	if cmd.Flags().Changed("in") {
		options = append(options, sparql.InList(o.InList...))
	}
	if cmd.Flags().Changed("contains") {
		options = append(options, sparql.Contains(o.Contains))
	}
	return options
}

func (o *QueryOptions) client(logger *zap.SugaredLogger) (*client.Client, error) {
	ee := endpoint.NewEndpointEnv()
	if err := ee.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure endpoint: %w", err)
	}

	options := append(ee.Options(),
		client.WithEndpoint(o.Endpoint),
		client.WithDefaultEndpoint(o.DefaultEndpoint),
		client.WithTimeout(o.Timeout),
		client.WithLogger(logger),
	)
	return client.New(options...), nil
}

func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the SPARQL query without sending it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := sparql.Build(opts.Subjects, opts.Predicates, opts.Options(cmd)...)
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"query": query})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), query)
			return err
		},
	}
	addQueryFlags(cmd, opts)

	return cmd
}

func NewObjectsCommand(rootOpts *RootOptions, logger *zap.SugaredLogger) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List the objects bound to the subjects and predicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(logger)
			if err != nil {
				return err
			}

			objects, err := c.GetObjects(cmd.Context(), opts.Subjects, opts.Predicates, opts.Options(cmd)...)
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), objects)
			}
			for _, object := range objects {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), object); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addQueryFlags(cmd, opts)
	addEndpointFlags(cmd, opts)

	return cmd
}

func NewTuplesCommand(rootOpts *RootOptions, logger *zap.SugaredLogger) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tuples",
		Short: "List the subject and object pairs bound to the subjects and predicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client(logger)
			if err != nil {
				return err
			}

			pairs, err := c.GetSubjectObjectTuples(cmd.Context(), opts.Subjects, opts.Predicates, opts.Options(cmd)...)
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), pairs)
			}
			for _, pair := range pairs {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", pair.Subject, pair.Object); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addQueryFlags(cmd, opts)
	addEndpointFlags(cmd, opts)

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
