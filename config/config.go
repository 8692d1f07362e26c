// Package config loads the Lambda configuration from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-playground/validator/v10"
)

// Async failure policies.
const (
	// DegradeOnFailure answers a failed async lookup with the empty fruit.
	DegradeOnFailure = "degrade"
	// SurfaceFailure returns the failure to the caller.
	SurfaceFailure = "surface"
)

// Environment variables read by Load.
const (
	EnvHandler            = "FRUITS_HANDLER"
	EnvRegion             = "AWS_REGION"
	EnvEndpoint           = "DYNAMODB_ENDPOINT"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
	EnvAsyncFailurePolicy = "ASYNC_FAILURE_POLICY"
	EnvAsyncTimeout       = "ASYNC_TIMEOUT"
)

// Config holds configuration for the fruits Lambda.
type Config struct {
	// Handler selects the entry point served by the process.
	// Default: "fruit"
	Handler string `validate:"required,oneof=fruit fruitDetector asyncFruit addFruit"`

	// Region overrides the AWS region from the default credential chain.
	Region string

	// Endpoint points the DynamoDB client somewhere else, e.g. DynamoDB Local.
	Endpoint string `validate:"omitempty,url"`

	// Default: "info"
	LogLevel string `validate:"oneof=debug info warn error"`

	// Default: "json"
	LogFormat string `validate:"oneof=json console"`

	// AsyncFailurePolicy decides what asyncFruit answers when the lookup fails.
	// Default: DegradeOnFailure
	AsyncFailurePolicy string `validate:"oneof=degrade surface"`

	// AsyncTimeout bounds how long asyncFruit waits for its lookup.
	// Default: 25s
	AsyncTimeout time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		Handler:            "fruit",
		LogLevel:           "info",
		LogFormat:          "json",
		AsyncFailurePolicy: DegradeOnFailure,
		AsyncTimeout:       25 * time.Second,
	}
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	cfg.Handler = getEnv(getenv, EnvHandler, cfg.Handler)
	cfg.Region = getenv(EnvRegion)
	cfg.Endpoint = getenv(EnvEndpoint)
	cfg.LogLevel = strings.ToLower(getEnv(getenv, EnvLogLevel, cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnv(getenv, EnvLogFormat, cfg.LogFormat))
	cfg.AsyncFailurePolicy = strings.ToLower(getEnv(getenv, EnvAsyncFailurePolicy, cfg.AsyncFailurePolicy))

	if raw := getenv(EnvAsyncTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvAsyncTimeout, err)
		}
		cfg.AsyncTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", e.Field(), e.Tag()))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

// NewDynamoClient builds a DynamoDB client from the default AWS credential
// chain, applying the configured region and endpoint overrides.
func NewDynamoClient(ctx context.Context, c Config) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("config: load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	}), nil
}
