package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/app-sre/dbpedia/pkg/version"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Format  string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand(logger *zap.SugaredLogger) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "dbpedia",
		Short:   "Query subjects and objects from DBpedia",
		Version: version.Version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("unable to load environment file: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "file with environment variables to load")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(logger))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewObjectsCommand(opts, logger))
	cmd.AddCommand(NewTuplesCommand(opts, logger))

	return cmd
}

func NewServeCommand(logger *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(logger)
		},
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
