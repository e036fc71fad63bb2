package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/riskibarqy/draft-assistant/internal/domain/draft"
	idgen "github.com/riskibarqy/draft-assistant/internal/platform/id"
	"github.com/riskibarqy/draft-assistant/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

const (
	anotherDraftQuestion = "Start another draft?"
	retryLoadQuestion    = "Try again?"
)

// DraftInteraction is the user-facing side of the draft loop.
type DraftInteraction interface {
	ShowRecommendations(ctx context.Context, round int, recs []draft.Recommendation) error
	// ReadSelection blocks until the user answers. io.EOF ends the draft.
	ReadSelection(ctx context.Context, offered int) (string, error)
	ShowInvalidSelection(ctx context.Context, err error) error
	ShowPick(ctx context.Context, pick draft.Pick, progress []draft.PositionProgress) error
	ShowFinished(ctx context.Context, summary DraftSummary) error
}

// DraftPrompter extends DraftInteraction with the questions asked between
// sessions. Confirm reports io.EOF when input ends.
type DraftPrompter interface {
	DraftInteraction
	ShowUnavailable(ctx context.Context, err error) error
	Confirm(ctx context.Context, question string) (bool, error)
}

// PlayOptions tunes the multi-session loop.
type PlayOptions struct {
	// PrefetchPool reloads the pool in the background while a finished
	// draft is on screen. Only worth it over a cached feed.
	PrefetchPool bool
}

// DraftSummary describes a finished draft session.
type DraftSummary struct {
	SessionID string
	Reason    draft.TerminationReason
	Rounds    int
	Picks     []draft.Pick
	Progress  []draft.PositionProgress
}

type DraftService struct {
	pools  *PlayerPoolService
	rules  draft.Rules
	topN   int
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewDraftService(
	pools *PlayerPoolService,
	rules draft.Rules,
	topN int,
	idGen idgen.Generator,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	if topN <= 0 {
		topN = draft.DefaultTopN
	}

	return &DraftService{
		pools:  pools,
		rules:  rules,
		topN:   topN,
		idGen:  idGen,
		logger: logger,
	}
}

// StartSession loads a fresh pool and opens a session over it.
func (s *DraftService) StartSession(ctx context.Context) (*draft.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.StartSession")
	defer span.End()

	if s.pools == nil {
		return nil, fmt.Errorf("%w: player pool service is required", ErrInvalidInput)
	}
	if err := s.rules.Validate(); err != nil {
		return nil, fmt.Errorf("validate draft rules: %w", err)
	}

	pool, err := s.pools.LoadPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("load player pool: %w", err)
	}

	opts := []draft.SessionOption{draft.WithTopN(s.topN)}
	if s.idGen != nil {
		sessionID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate session id: %w", err)
		}
		opts = append(opts, draft.WithID(sessionID))
	}

	session, err := draft.NewSession(pool, s.rules, opts...)
	if err != nil {
		return nil, fmt.Errorf("open draft session: %w", err)
	}

	s.logger.InfoContext(ctx, "draft session started",
		"session_id", session.ID(),
		"pool_size", len(pool),
		"top_n", s.topN,
		"state", session.State(),
	)

	return session, nil
}

// Run drives the session until the pool is exhausted or the user quits.
// An invalid answer re-offers the same round without re-ranking.
func (s *DraftService) Run(ctx context.Context, session *draft.Session, ui DraftInteraction) (DraftSummary, error) {
	if session == nil {
		return DraftSummary{}, fmt.Errorf("%w: draft session is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Run",
		attribute.String("draft.session_id", session.ID()),
		attribute.Int("draft.pool_size", len(session.Pool())),
	)
	defer span.End()

	if ui == nil {
		return DraftSummary{}, fmt.Errorf("%w: draft interaction is required", ErrInvalidInput)
	}

	logger := s.logger.With("session_id", session.ID())
	for session.State() == draft.StateActive {
		if err := ctx.Err(); err != nil {
			return summarize(session), err
		}

		recs, err := session.NextRound()
		if err != nil {
			return summarize(session), fmt.Errorf("next round: %w", err)
		}
		if err := ui.ShowRecommendations(ctx, session.Round(), recs); err != nil {
			return summarize(session), fmt.Errorf("show recommendations: %w", err)
		}

		pick, err := s.awaitPick(ctx, logger, session, ui, len(recs))
		if err != nil {
			return summarize(session), err
		}
		if pick.Quit {
			logger.InfoContext(ctx, "draft quit by user", "round", pick.Round)
			break
		}

		logger.InfoContext(ctx, "player drafted",
			"round", pick.Round,
			"overall", pick.Overall,
			"player", pick.Player.Name,
			"position", pick.Player.Position,
			"pool_remaining", len(session.Pool()),
		)
		if err := ui.ShowPick(ctx, pick, session.Progress()); err != nil {
			return summarize(session), fmt.Errorf("show pick: %w", err)
		}
	}

	summary := summarize(session)
	span.SetAttributes(
		attribute.String("draft.reason", string(summary.Reason)),
		attribute.Int("draft.picks", len(summary.Picks)),
	)
	logger.InfoContext(ctx, "draft session finished",
		"reason", summary.Reason,
		"rounds", summary.Rounds,
		"picks", len(summary.Picks),
	)
	if err := ui.ShowFinished(ctx, summary); err != nil {
		return summary, fmt.Errorf("show finished: %w", err)
	}

	return summary, nil
}

// Play runs draft sessions back to back until the user declines another
// one. A pool that cannot be loaded is offered for retry; declining
// returns the load error.
func (s *DraftService) Play(ctx context.Context, ui DraftPrompter, opts PlayOptions) ([]DraftSummary, error) {
	if ui == nil {
		return nil, fmt.Errorf("%w: draft interaction is required", ErrInvalidInput)
	}

	var prefetch conc.WaitGroup
	defer prefetch.Wait()
	prefetchCtx, cancelPrefetch := context.WithCancel(ctx)
	defer cancelPrefetch()

	var summaries []DraftSummary
	for {
		session, err := s.StartSession(ctx)
		if err != nil {
			if !errors.Is(err, ErrDependencyUnavailable) {
				return summaries, fmt.Errorf("start draft: %w", err)
			}
			s.logger.WarnContext(ctx, "player pool unavailable", "error", err)
			if showErr := ui.ShowUnavailable(ctx, err); showErr != nil {
				return summaries, fmt.Errorf("show unavailable: %w", showErr)
			}
			retry, confirmErr := confirm(ctx, ui, retryLoadQuestion)
			if confirmErr != nil {
				return summaries, confirmErr
			}
			if !retry {
				return summaries, fmt.Errorf("start draft: %w", err)
			}
			continue
		}

		summary, err := s.Run(ctx, session, ui)
		summaries = append(summaries, summary)
		if err != nil {
			return summaries, fmt.Errorf("run draft: %w", err)
		}

		if opts.PrefetchPool {
			prefetch.Go(func() {
				if _, err := s.pools.LoadPool(prefetchCtx); err != nil {
					s.logger.DebugContext(prefetchCtx, "prefetch player pool", "error", err)
				}
			})
		}

		again, err := confirm(ctx, ui, anotherDraftQuestion)
		if err != nil {
			return summaries, err
		}
		if !again {
			return summaries, nil
		}
	}
}

func confirm(ctx context.Context, ui DraftPrompter, question string) (bool, error) {
	ok, err := ui.Confirm(ctx, question)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm %q: %w", question, err)
	}
	return ok, nil
}

func (s *DraftService) awaitPick(
	ctx context.Context,
	logger *logging.Logger,
	session *draft.Session,
	ui DraftInteraction,
	offered int,
) (draft.Pick, error) {
	for {
		raw, err := ui.ReadSelection(ctx, offered)
		if errors.Is(err, io.EOF) {
			return session.ApplyPick(draft.QuitSelection)
		}
		if err != nil {
			return draft.Pick{}, fmt.Errorf("read selection: %w", err)
		}

		pick, err := applySelection(session, raw)
		if err == nil {
			return pick, nil
		}
		if !errors.Is(err, draft.ErrInvalidSelection) {
			return draft.Pick{}, fmt.Errorf("apply pick: %w", err)
		}

		logger.DebugContext(ctx, "selection rejected", "round", session.Round(), "input", raw, "error", err)
		if showErr := ui.ShowInvalidSelection(ctx, err); showErr != nil {
			return draft.Pick{}, fmt.Errorf("show invalid selection: %w", showErr)
		}
	}
}

func applySelection(session *draft.Session, raw string) (draft.Pick, error) {
	selection, err := draft.ParseSelection(raw)
	if err != nil {
		return draft.Pick{}, err
	}
	return session.ApplyPick(selection)
}

func summarize(session *draft.Session) DraftSummary {
	return DraftSummary{
		SessionID: session.ID(),
		Reason:    session.Reason(),
		Rounds:    session.Round(),
		Picks:     session.Picks(),
		Progress:  session.Progress(),
	}
}
