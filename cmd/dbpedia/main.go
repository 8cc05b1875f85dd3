package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/app-sre/dbpedia/pkg/cmd"
)

func main() {
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.NewRootCommand(logger).Execute(); err != nil {
		logger.Fatalf("Unable to run dbpedia: %s", err)
	}
}
