package app

import (
	"context"
	"fmt"
	"io"

	"github.com/riskibarqy/draft-assistant/external/sleeper"
	"github.com/riskibarqy/draft-assistant/internal/config"
	"github.com/riskibarqy/draft-assistant/internal/domain/draft"
	"github.com/riskibarqy/draft-assistant/internal/domain/player"
	cachedrepo "github.com/riskibarqy/draft-assistant/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/draft-assistant/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-assistant/internal/interfaces/console"
	basecache "github.com/riskibarqy/draft-assistant/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-assistant/internal/platform/id"
	"github.com/riskibarqy/draft-assistant/internal/platform/logging"
	"github.com/riskibarqy/draft-assistant/internal/platform/resilience"
	"github.com/riskibarqy/draft-assistant/internal/usecase"
)

// App wires the player feed, the draft services and the console.
type App struct {
	logger   *logging.Logger
	drafts   *usecase.DraftService
	prefetch bool
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	feed, err := newPlayerFeed(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithFeed(cfg, feed, logger), nil
}

// NewWithFeed builds the app over an already constructed feed, still
// applying the configured cache.
func NewWithFeed(cfg config.Config, feed player.Feed, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore[[]player.Record](cfg.CacheTTL)
		feed = cachedrepo.NewPlayerFeed(feed, store, "players:"+cfg.PlayerSource+":"+cfg.SleeperSport)
	}

	pools := usecase.NewPlayerPoolService(feed, usecase.PoolDefaults{
		Projection: cfg.DraftDefaultProjection,
		Tier:       cfg.DraftDefaultTier,
		ADP:        cfg.DraftDefaultADP,
	}, logger)
	drafts := usecase.NewDraftService(
		pools,
		draft.DefaultRules(),
		cfg.DraftTopN,
		idgen.NewRandomGenerator("draft"),
		logger,
	)

	return &App{
		logger:   logger,
		drafts:   drafts,
		prefetch: cfg.CacheEnabled,
	}
}

// Run plays draft sessions against in/out until the user stops, returning
// the summary of every finished draft.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) ([]usecase.DraftSummary, error) {
	return a.drafts.Play(ctx, console.New(in, out), usecase.PlayOptions{PrefetchPool: a.prefetch})
}

func newPlayerFeed(cfg config.Config, logger *logging.Logger) (player.Feed, error) {
	switch cfg.PlayerSource {
	case config.PlayerSourceMemory:
		logger.Debug("using seeded player feed")
		return memory.NewPlayerFeed(memory.SeedRecords()), nil
	case config.PlayerSourceSleeper, "":
		return sleeper.NewClient(sleeper.ClientConfig{
			BaseURL:           cfg.SleeperBaseURL,
			Sport:             cfg.SleeperSport,
			Timeout:           cfg.SleeperTimeout,
			MaxRetries:        cfg.SleeperMaxRetries,
			RequestsPerSecond: cfg.SleeperRequestsPerSecond,
			Logger:            logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SleeperCircuitEnabled,
				FailureThreshold: cfg.SleeperCircuitFailureCount,
				OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
			},
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown player source %q", usecase.ErrInvalidInput, cfg.PlayerSource)
	}
}
