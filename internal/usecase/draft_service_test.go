package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/riskibarqy/draft-assistant/internal/domain/draft"
	"github.com/riskibarqy/draft-assistant/internal/domain/player"
	"github.com/riskibarqy/draft-assistant/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/draft-assistant/internal/mocks/domain/player"
	idgen "github.com/riskibarqy/draft-assistant/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

// scriptedInteraction answers selections from a fixed script and records
// everything the draft loop shows. An exhausted script reads as io.EOF.
type scriptedInteraction struct {
	answers  []string
	rounds   [][]draft.Recommendation
	invalid  []error
	picks    []draft.Pick
	finished []DraftSummary
}

func (s *scriptedInteraction) ShowRecommendations(_ context.Context, _ int, recs []draft.Recommendation) error {
	s.rounds = append(s.rounds, recs)
	return nil
}

func (s *scriptedInteraction) ReadSelection(context.Context, int) (string, error) {
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scriptedInteraction) ShowInvalidSelection(_ context.Context, err error) error {
	s.invalid = append(s.invalid, err)
	return nil
}

func (s *scriptedInteraction) ShowPick(_ context.Context, pick draft.Pick, _ []draft.PositionProgress) error {
	s.picks = append(s.picks, pick)
	return nil
}

func (s *scriptedInteraction) ShowFinished(_ context.Context, summary DraftSummary) error {
	s.finished = append(s.finished, summary)
	return nil
}

func projectedRecord(id, name, position string, projection float64, tier int) player.Record {
	record := activeRecord(id, name, position)
	record.Projection = &projection
	record.Tier = &tier
	return record
}

func newExampleDraftService(t *testing.T) *DraftService {
	t.Helper()

	feed := memory.NewPlayerFeed([]player.Record{
		projectedRecord("1", "Quinn", "QB", 220, 1),
		projectedRecord("2", "Rhodes", "RB", 250, 1),
		projectedRecord("3", "Reyes", "RB", 230, 2),
	})
	pools := NewPlayerPoolService(feed, DefaultPoolDefaults(), nil)
	return NewDraftService(pools, draft.DefaultRules(), 5, idgen.NewRandomGenerator("draft"), nil)
}

func TestDraftService_StartSession(t *testing.T) {
	t.Parallel()

	session, err := newExampleDraftService(t).StartSession(t.Context())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if !strings.HasPrefix(session.ID(), "draft-") {
		t.Fatalf("unexpected session id: %s", session.ID())
	}
	if session.State() != draft.StateActive {
		t.Fatalf("expected active session, got %s", session.State())
	}
	if len(session.Pool()) != 3 {
		t.Fatalf("expected pool of 3, got %d", len(session.Pool()))
	}
}

func TestDraftService_StartSession_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	feed := playermock.NewFeed(t)
	feed.On("FetchRecords", mock.Anything).Return(nil, errors.New("dial tcp: timeout")).Once()

	service := NewDraftService(NewPlayerPoolService(feed, DefaultPoolDefaults(), nil), draft.DefaultRules(), 0, nil, nil)
	_, err := service.StartSession(t.Context())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestDraftService_StartSession_RejectsIncompleteRules(t *testing.T) {
	t.Parallel()

	feed := playermock.NewFeed(t)
	rules := draft.DefaultRules()
	delete(rules.ReplacementPoints, player.PositionTightEnd)

	service := NewDraftService(NewPlayerPoolService(feed, DefaultPoolDefaults(), nil), rules, 0, nil, nil)
	_, err := service.StartSession(t.Context())
	if !errors.Is(err, draft.ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func TestDraftService_Run_InvalidThenValidThenQuit(t *testing.T) {
	t.Parallel()

	service := newExampleDraftService(t)
	session, err := service.StartSession(t.Context())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	ui := &scriptedInteraction{answers: []string{"abc", "7", " 1 ", "0"}}
	summary, err := service.Run(t.Context(), session, ui)
	if err != nil {
		t.Fatalf("run draft: %v", err)
	}

	if len(ui.invalid) != 2 {
		t.Fatalf("expected 2 rejected answers, got %d", len(ui.invalid))
	}
	for _, rejected := range ui.invalid {
		if !errors.Is(rejected, draft.ErrInvalidSelection) {
			t.Fatalf("expected ErrInvalidSelection, got %v", rejected)
		}
	}

	if len(ui.rounds) != 2 {
		t.Fatalf("expected recommendations for 2 rounds, got %d", len(ui.rounds))
	}
	if ui.rounds[0][0].Player.Name != "Rhodes" {
		t.Fatalf("expected Rhodes first in round 1, got %s", ui.rounds[0][0].Player.Name)
	}
	if ui.rounds[1][0].Player.Name != "Reyes" {
		t.Fatalf("expected Reyes first in round 2, got %s", ui.rounds[1][0].Player.Name)
	}

	if len(ui.picks) != 1 || ui.picks[0].Player.Name != "Rhodes" {
		t.Fatalf("expected Rhodes drafted, got %+v", ui.picks)
	}
	if summary.Reason != draft.ReasonUserQuit {
		t.Fatalf("expected user quit, got %s", summary.Reason)
	}
	if summary.Rounds != 2 || len(summary.Picks) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(ui.finished) != 1 {
		t.Fatalf("expected finish to be shown once, got %d", len(ui.finished))
	}
	if got := session.Roster()[player.PositionRunningBack]; got != 1 {
		t.Fatalf("expected 1 RB drafted, got %d", got)
	}
}

func TestDraftService_Run_EndOfInputQuits(t *testing.T) {
	t.Parallel()

	service := newExampleDraftService(t)
	session, err := service.StartSession(t.Context())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	summary, err := service.Run(t.Context(), session, &scriptedInteraction{})
	if err != nil {
		t.Fatalf("run draft: %v", err)
	}
	if summary.Reason != draft.ReasonUserQuit || len(summary.Picks) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(session.Pool()) != 3 {
		t.Fatalf("expected untouched pool, got %d players", len(session.Pool()))
	}
}

func TestDraftService_Run_DraftsUntilPoolIsExhausted(t *testing.T) {
	t.Parallel()

	service := newExampleDraftService(t)
	session, err := service.StartSession(t.Context())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	ui := &scriptedInteraction{answers: []string{"1", "1", "1", "1"}}
	summary, err := service.Run(t.Context(), session, ui)
	if err != nil {
		t.Fatalf("run draft: %v", err)
	}

	if summary.Reason != draft.ReasonPoolExhausted {
		t.Fatalf("expected pool exhausted, got %s", summary.Reason)
	}
	if len(summary.Picks) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(summary.Picks))
	}
	if len(ui.answers) != 1 {
		t.Fatalf("expected the loop to stop reading after exhaustion, %d answers left", len(ui.answers))
	}
	if _, err := session.NextRound(); !errors.Is(err, draft.ErrSessionTerminated) {
		t.Fatalf("expected ErrSessionTerminated, got %v", err)
	}
}

func TestDraftService_Run_EmptyPoolFinishesImmediately(t *testing.T) {
	t.Parallel()

	pools := NewPlayerPoolService(memory.NewPlayerFeed(nil), DefaultPoolDefaults(), nil)
	service := NewDraftService(pools, draft.DefaultRules(), 0, nil, nil)
	session, err := service.StartSession(t.Context())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	ui := &scriptedInteraction{answers: []string{"1"}}
	summary, err := service.Run(t.Context(), session, ui)
	if err != nil {
		t.Fatalf("run draft: %v", err)
	}
	if summary.Reason != draft.ReasonPoolExhausted || len(ui.rounds) != 0 {
		t.Fatalf("expected immediate exhaustion, got %+v rounds=%d", summary, len(ui.rounds))
	}
}

func TestDraftService_Run_CancelledContext(t *testing.T) {
	t.Parallel()

	service := newExampleDraftService(t)
	session, err := service.StartSession(t.Context())
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := service.Run(ctx, session, &scriptedInteraction{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
