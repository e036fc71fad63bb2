package draft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

type State string

const (
	StateActive     State = "active"
	StateTerminated State = "terminated"
)

type TerminationReason string

const (
	ReasonNone          TerminationReason = ""
	ReasonPoolExhausted TerminationReason = "pool_exhausted"
	ReasonUserQuit      TerminationReason = "user_quit"
)

// QuitSelection is the selection value that ends a session.
const QuitSelection = 0

// Pick is the outcome of one accepted selection.
type Pick struct {
	Player  player.Player
	Round   int
	Overall int
	Quit    bool
}

// Session owns the mutable state of one user's draft: the shrinking pool,
// the roster counts and the recommendation list currently on offer.
// It is not safe for concurrent use.
type Session struct {
	id              string
	rules           Rules
	topN            int
	pool            []player.Player
	roster          Roster
	state           State
	reason          TerminationReason
	round           int
	recommendations []Recommendation
	picks           []Pick
}

type SessionOption func(*Session)

func WithTopN(topN int) SessionOption {
	return func(s *Session) {
		if topN > 0 {
			s.topN = topN
		}
	}
}

func WithID(id string) SessionOption {
	return func(s *Session) {
		s.id = id
	}
}

func NewSession(pool []player.Player, rules Rules, opts ...SessionOption) (*Session, error) {
	seen := make(map[string]struct{}, len(pool))
	for _, p := range pool {
		if !rules.Covers(p.Position) {
			return nil, fmt.Errorf("%w: player=%s position=%s", ErrUnknownPosition, p.Name, p.Position)
		}
		if _, exists := seen[p.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	s := &Session{
		rules:  rules,
		topN:   DefaultTopN,
		pool:   append([]player.Player(nil), pool...),
		roster: NewRoster(),
		state:  StateActive,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.pool) == 0 {
		s.terminate(ReasonPoolExhausted)
	}

	return s, nil
}

// NextRound ranks the current pool and makes the result the list that
// ApplyPick selects from.
func (s *Session) NextRound() ([]Recommendation, error) {
	if s.state == StateTerminated {
		return nil, ErrSessionTerminated
	}

	recs, err := Rank(s.rules, s.pool, s.roster, s.topN)
	if err != nil {
		return nil, fmt.Errorf("rank pool: %w", err)
	}

	s.round++
	s.recommendations = recs
	return append([]Recommendation(nil), recs...), nil
}

// ApplyPick takes a 1-based index into the current recommendations, or
// QuitSelection. An out-of-range index returns ErrInvalidSelection and
// leaves the session untouched, current list included.
func (s *Session) ApplyPick(selection int) (Pick, error) {
	if s.state == StateTerminated {
		return Pick{}, ErrSessionTerminated
	}

	if selection == QuitSelection {
		s.terminate(ReasonUserQuit)
		return Pick{Round: s.round, Quit: true}, nil
	}

	if selection < 1 || selection > len(s.recommendations) {
		return Pick{}, fmt.Errorf("%w: %d is outside 1-%d", ErrInvalidSelection, selection, len(s.recommendations))
	}

	selected := s.recommendations[selection-1].Player
	idx := s.indexOf(selected.Name)
	if idx < 0 {
		return Pick{}, fmt.Errorf("%w: %s is no longer in the pool", ErrInvalidSelection, selected.Name)
	}

	s.pool = append(s.pool[:idx], s.pool[idx+1:]...)
	s.roster[selected.Position]++
	s.recommendations = nil

	pick := Pick{
		Player:  selected,
		Round:   s.round,
		Overall: len(s.picks) + 1,
	}
	s.picks = append(s.picks, pick)

	if len(s.pool) == 0 {
		s.terminate(ReasonPoolExhausted)
	}

	return pick, nil
}

func (s *Session) indexOf(name string) int {
	for i, p := range s.pool {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (s *Session) terminate(reason TerminationReason) {
	s.state = StateTerminated
	s.reason = reason
	s.recommendations = nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Reason() TerminationReason {
	return s.reason
}

func (s *Session) Round() int {
	return s.round
}

func (s *Session) Rules() Rules {
	return s.rules
}

func (s *Session) Pool() []player.Player {
	return append([]player.Player(nil), s.pool...)
}

func (s *Session) Roster() Roster {
	return s.roster.Clone()
}

func (s *Session) Recommendations() []Recommendation {
	return append([]Recommendation(nil), s.recommendations...)
}

func (s *Session) Picks() []Pick {
	return append([]Pick(nil), s.picks...)
}

func (s *Session) Progress() []PositionProgress {
	return s.roster.Progress(s.rules)
}

// ParseSelection reads a raw user answer as a selection number.
func ParseSelection(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	selection, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, value)
	}
	return selection, nil
}
