// Command fruitlambda serves one fruit entry point as an AWS Lambda function.
// FRUITS_HANDLER selects which one.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/thinksy/fruits/config"
	"github.com/thinksy/fruits/handler"
	"github.com/thinksy/fruits/internal/logging"
	"github.com/thinksy/fruits/service"
	"github.com/thinksy/fruits/store"
)

// Replaced in tests.
var (
	lambdaStarter = lambda.Start
	newClient     = func(ctx context.Context, cfg config.Config) (store.Client, error) {
		return config.NewDynamoClient(ctx, cfg)
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fruitlambda: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Configure(cfg)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("fruitlambda failed to start")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	h := handler.New(service.NewSyncService(client), service.NewAsyncService(client), cfg, logger)
	fn, err := h.Lookup(cfg.Handler)
	if err != nil {
		return err
	}

	logger.Info().
		Str("table", store.TableName).
		Str("async_failure_policy", cfg.AsyncFailurePolicy).
		Msg("starting lambda handler")
	lambdaStarter(fn)
	return nil
}
