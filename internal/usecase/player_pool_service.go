package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-assistant/internal/domain/player"
	"github.com/riskibarqy/draft-assistant/internal/platform/logging"
)

// PoolDefaults fills fields a feed record does not carry.
type PoolDefaults struct {
	Projection float64
	Tier       int
	ADP        float64
}

func DefaultPoolDefaults() PoolDefaults {
	return PoolDefaults{
		Projection: 200,
		Tier:       3,
		ADP:        100,
	}
}

type poolCandidate struct {
	Name       string  `validate:"required"`
	Position   string  `validate:"required,oneof=QB RB WR TE"`
	Projection float64 `validate:"gte=0"`
	Tier       int     `validate:"gte=1"`
	ADP        float64 `validate:"gte=0"`
}

type PlayerPoolService struct {
	feed      player.Feed
	defaults  PoolDefaults
	validator *validator.Validate
	logger    *logging.Logger
}

func NewPlayerPoolService(feed player.Feed, defaults PoolDefaults, logger *logging.Logger) *PlayerPoolService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerPoolService{
		feed:      feed,
		defaults:  defaults,
		validator: validator.New(),
		logger:    logger,
	}
}

// LoadPool fetches feed records and keeps the draftable ones: active,
// at a known position and carrying at least one fantasy position.
// Names are unique in the result; later duplicates are dropped.
func (s *PlayerPoolService) LoadPool(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerPoolService.LoadPool")
	defer span.End()

	if s.feed == nil {
		return nil, fmt.Errorf("%w: player feed is required", ErrInvalidInput)
	}
	if err := s.validateDefaults(); err != nil {
		return nil, err
	}

	records, err := s.feed.FetchRecords(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: fetch player records: %w", ErrDependencyUnavailable, err)
	}

	pool := make([]player.Player, 0, len(records)/4)
	seen := make(map[string]struct{}, len(records)/4)
	var skippedInvalid, skippedDuplicate int
	for _, record := range records {
		if !isDraftable(record) {
			continue
		}

		candidate := s.toCandidate(record)
		if err := s.validator.StructCtx(ctx, candidate); err != nil {
			skippedInvalid++
			s.logger.DebugContext(ctx, "skip player record", "external_id", record.ExternalID, "error", err)
			continue
		}
		if _, exists := seen[candidate.Name]; exists {
			skippedDuplicate++
			continue
		}
		seen[candidate.Name] = struct{}{}

		pool = append(pool, player.Player{
			Name:       candidate.Name,
			Position:   player.Position(candidate.Position),
			Projection: candidate.Projection,
			Tier:       candidate.Tier,
			ADP:        candidate.ADP,
		})
	}

	s.logger.InfoContext(ctx, "player pool loaded",
		"records", len(records),
		"pool_size", len(pool),
		"skipped_invalid", skippedInvalid,
		"skipped_duplicate", skippedDuplicate,
	)

	return pool, nil
}

func (s *PlayerPoolService) validateDefaults() error {
	if s.defaults.Projection < 0 {
		return fmt.Errorf("%w: default projection must not be negative", ErrInvalidInput)
	}
	if s.defaults.Tier < 1 {
		return fmt.Errorf("%w: default tier must be greater than zero", ErrInvalidInput)
	}
	if s.defaults.ADP < 0 {
		return fmt.Errorf("%w: default adp must not be negative", ErrInvalidInput)
	}
	return nil
}

func isDraftable(record player.Record) bool {
	if !record.Active {
		return false
	}
	if _, ok := player.ParsePosition(record.Position); !ok {
		return false
	}
	return len(record.FantasyPositions) > 0
}

func (s *PlayerPoolService) toCandidate(record player.Record) poolCandidate {
	name := strings.TrimSpace(record.FullName)
	if name == "" {
		name = strings.TrimSpace(record.LastName)
	}

	candidate := poolCandidate{
		Name:       name,
		Position:   record.Position,
		Projection: s.defaults.Projection,
		Tier:       s.defaults.Tier,
		ADP:        s.defaults.ADP,
	}
	if record.Projection != nil {
		candidate.Projection = *record.Projection
	}
	if record.Tier != nil {
		candidate.Tier = *record.Tier
	}
	if record.ADP != nil {
		candidate.ADP = *record.ADP
	}

	return candidate
}
