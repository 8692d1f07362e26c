// Package handler adapts the fruit services to Lambda invocations.
package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thinksy/fruits/config"
	"github.com/thinksy/fruits/fruit"
	"github.com/thinksy/fruits/internal/future"
)

// Handler names accepted by Lookup.
const (
	NameFruit         = "fruit"
	NameFruitDetector = "fruitDetector"
	NameAsyncFruit    = "asyncFruit"
	NameAddFruit      = "addFruit"
)

// ErrUnknownHandler is returned by Lookup for names it does not serve.
var ErrUnknownHandler = errors.New("fruits: unknown handler")

// Request is the invocation payload.
type Request struct {
	Name   string `json:"name"`
	Season string `json:"type,omitempty"`
}

// SyncFruits is the blocking service used by the synchronous entry points.
type SyncFruits interface {
	Get(ctx context.Context, name string) (fruit.Fruit, error)
	Add(ctx context.Context, f fruit.Fruit) ([]fruit.Fruit, error)
	SeasonOfFruit(ctx context.Context, name string) (fruit.Season, error)
}

// AsyncFruits is the future-based service used by asyncFruit.
type AsyncFruits interface {
	Get(ctx context.Context, name string) *future.Future[fruit.Fruit]
}

// Handler serves every entry point from one set of services.
type Handler struct {
	sync    SyncFruits
	async   AsyncFruits
	policy  string
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a Handler. The async failure policy and wait bound come from cfg.
func New(sync SyncFruits, async AsyncFruits, cfg config.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		sync:    sync,
		async:   async,
		policy:  cfg.AsyncFailurePolicy,
		timeout: cfg.AsyncTimeout,
		logger:  logger,
	}
}

// Fruit returns the fruit named in the request. Store failures are returned.
func (h *Handler) Fruit(ctx context.Context, req Request) (fruit.Fruit, error) {
	ctx = h.withLogger(ctx, NameFruit)
	return h.sync.Get(ctx, req.Name)
}

// FruitDetector returns the season of the fruit named in the request.
func (h *Handler) FruitDetector(ctx context.Context, req Request) (fruit.Season, error) {
	ctx = h.withLogger(ctx, NameFruitDetector)
	return h.sync.SeasonOfFruit(ctx, req.Name)
}

// AsyncFruit looks the fruit up through the async service and waits once for
// the answer. With the degrade policy a failed lookup is logged and answered
// with the empty fruit.
func (h *Handler) AsyncFruit(ctx context.Context, req Request) (fruit.Fruit, error) {
	ctx = h.withLogger(ctx, NameAsyncFruit)

	wait := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		wait, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	f, err := h.async.Get(ctx, req.Name).Await(wait)
	if err == nil {
		return f, nil
	}

	if h.policy == config.SurfaceFailure {
		return fruit.Fruit{}, err
	}
	zerolog.Ctx(ctx).Error().Err(err).Str("fruit", req.Name).Msg("async lookup failed, answering with empty fruit")
	return fruit.Fruit{}, nil
}

// AddFruit stores the fruit described by the request and returns the table
// contents afterwards. The season must name a season exactly.
func (h *Handler) AddFruit(ctx context.Context, req Request) ([]fruit.Fruit, error) {
	ctx = h.withLogger(ctx, NameAddFruit)

	season, err := fruit.ParseSeason(req.Season)
	if err != nil {
		return nil, err
	}
	return h.sync.Add(ctx, fruit.New(req.Name, season))
}

// Lookup returns the entry point registered under name, in a form accepted
// by lambda.Start.
func (h *Handler) Lookup(name string) (any, error) {
	switch name {
	case NameFruit:
		return h.Fruit, nil
	case NameFruitDetector:
		return h.FruitDetector, nil
	case NameAsyncFruit:
		return h.AsyncFruit, nil
	case NameAddFruit:
		return h.AddFruit, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, name)
	}
}

// withLogger attaches a per-invocation logger carrying the request id. Outside
// Lambda a fresh id is generated.
func (h *Handler) withLogger(ctx context.Context, op string) context.Context {
	requestID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logger := h.logger.With().
		Str("op", op).
		Str("request_id", requestID).
		Logger()
	return logger.WithContext(ctx)
}
