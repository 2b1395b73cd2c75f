package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/football-portal/internal/domain/fantasy"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// DraftView is the draft plus its validation outcome.
type DraftView struct {
	Draft     fantasy.Draft
	Exists    bool
	Complete  bool
	Problem   string
	Positions map[player.Position]int
	Shortfall map[player.Position]int
}

// StartDraftInput opens or replaces the session's draft.
type StartDraftInput struct {
	LeagueID int64
	Season   int
	Name     string
}

type FantasyService struct {
	drafts  fantasy.Repository
	players *PlayerService
	rules   fantasy.Rules
	logger  *logging.Logger
	now     func() time.Time
}

func NewFantasyService(drafts fantasy.Repository, players *PlayerService, rules fantasy.Rules, logger *logging.Logger) *FantasyService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FantasyService{
		drafts:  drafts,
		players: players,
		rules:   rules,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *FantasyService) Rules() fantasy.Rules {
	return s.rules
}

func (s *FantasyService) Draft(ctx context.Context) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.Draft")
	defer span.End()

	sessionID, err := draftSession(ctx)
	if err != nil {
		return DraftView{}, err
	}

	draft, exists, err := s.drafts.Get(ctx, sessionID)
	if err != nil {
		return DraftView{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return DraftView{Draft: fantasy.Draft{SessionID: sessionID, BudgetCap: s.rules.BudgetCap}}, nil
	}
	return s.view(draft, true), nil
}

func (s *FantasyService) Start(ctx context.Context, input StartDraftInput) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.Start")
	defer span.End()

	sessionID, err := draftSession(ctx)
	if err != nil {
		return DraftView{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		input.Name = "My Squad"
	}
	if len(input.Name) > 64 {
		return DraftView{}, fmt.Errorf("%w: squad name is too long", ErrInvalidInput)
	}

	draft := fantasy.Draft{
		SessionID: sessionID,
		LeagueID:  input.LeagueID,
		Season:    input.Season,
		Name:      input.Name,
		BudgetCap: s.rules.BudgetCap,
		UpdatedAt: s.now().UTC(),
	}
	if err := draft.ValidateBasic(); err != nil {
		return DraftView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.drafts.Upsert(ctx, draft); err != nil {
		return DraftView{}, fmt.Errorf("save draft: %w", err)
	}
	return s.view(draft, true), nil
}

// Candidates lists the players the draft can pick from, marked with their
// draft price.
func (s *FantasyService) Candidates(ctx context.Context) ([]fantasy.SquadPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.Candidates")
	defer span.End()

	draft, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := s.players.Candidates(ctx, draft.LeagueID, draft.Season)
	if err != nil {
		return nil, fmt.Errorf("list draft candidates: %w", err)
	}

	out := make([]fantasy.SquadPick, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, fantasy.PickFrom(p))
	}
	return out, nil
}

// AddPick adds a ranked player to the draft. The draft must stay completable.
func (s *FantasyService) AddPick(ctx context.Context, playerID int64) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.AddPick")
	defer span.End()

	if playerID <= 0 {
		return DraftView{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	draft, err := s.current(ctx)
	if err != nil {
		return DraftView{}, err
	}
	if draft.Has(playerID) {
		return DraftView{}, fmt.Errorf("%w: %w", ErrInvalidInput, fantasy.ErrDuplicatePlayerInSquad)
	}

	ranked, err := s.players.Candidates(ctx, draft.LeagueID, draft.Season)
	if err != nil {
		return DraftView{}, fmt.Errorf("list draft candidates: %w", err)
	}
	idx := slices.IndexFunc(ranked, func(p player.TopPlayer) bool { return p.ID == playerID })
	if idx < 0 {
		return DraftView{}, fmt.Errorf("%w: player=%d is not available for league=%d", ErrNotFound, playerID, draft.LeagueID)
	}

	picks := append(slices.Clone(draft.Picks), fantasy.PickFrom(ranked[idx]))
	if err := fantasy.ValidatePicksPartial(picks, s.rules); err != nil {
		return DraftView{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	draft.Picks = picks
	return s.save(ctx, draft)
}

func (s *FantasyService) RemovePick(ctx context.Context, playerID int64) (DraftView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyService.RemovePick")
	defer span.End()

	draft, err := s.current(ctx)
	if err != nil {
		return DraftView{}, err
	}
	if !draft.Has(playerID) {
		return DraftView{}, fmt.Errorf("%w: player=%d is not in the draft", ErrNotFound, playerID)
	}

	draft.Picks = slices.DeleteFunc(slices.Clone(draft.Picks), func(p fantasy.SquadPick) bool { return p.PlayerID == playerID })
	return s.save(ctx, draft)
}

func (s *FantasyService) Reset(ctx context.Context) error {
	sessionID, err := draftSession(ctx)
	if err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (s *FantasyService) current(ctx context.Context) (fantasy.Draft, error) {
	sessionID, err := draftSession(ctx)
	if err != nil {
		return fantasy.Draft{}, err
	}

	draft, exists, err := s.drafts.Get(ctx, sessionID)
	if err != nil {
		return fantasy.Draft{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return fantasy.Draft{}, fmt.Errorf("%w: no draft started", ErrNotFound)
	}
	return draft, nil
}

func (s *FantasyService) save(ctx context.Context, draft fantasy.Draft) (DraftView, error) {
	draft.UpdatedAt = s.now().UTC()
	if err := s.drafts.Upsert(ctx, draft); err != nil {
		return DraftView{}, fmt.Errorf("save draft: %w", err)
	}
	return s.view(draft, true), nil
}

func (s *FantasyService) view(draft fantasy.Draft, exists bool) DraftView {
	positions := make(map[player.Position]int, len(player.AllPositions))
	for _, pick := range draft.Picks {
		positions[pick.Position]++
	}

	out := DraftView{Draft: draft, Exists: exists, Positions: positions, Shortfall: s.rules.Shortfall(draft.Picks)}
	if len(draft.Picks) == 0 {
		return out
	}

	err := fantasy.ValidatePicks(draft.Picks, s.rules)
	switch {
	case err == nil:
		out.Complete = true
	case errors.Is(err, fantasy.ErrInvalidSquadSize):
		out.Problem = fmt.Sprintf("%d of %d players picked", len(draft.Picks), s.rules.SquadSize)
	default:
		out.Problem = err.Error()
	}
	return out
}

// draftSession returns the id drafts are kept under.
func draftSession(ctx context.Context) (string, error) {
	s, ok := session.FromContext(ctx)
	if !ok || s.ID == "" {
		return "", fmt.Errorf("%w: a browser session is required", ErrInvalidInput)
	}
	return s.ID, nil
}
