package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pooltrack/tournament-api/models"
	"github.com/pooltrack/tournament-api/repositories"
	"golang.org/x/sync/errgroup"
)

// populateConcurrency bounds the per-tournament mapping fan-out in
// ListTournaments. Still one query per result row.
const populateConcurrency = 4

type CreateTournamentInput struct {
	Name string `json:"name" validate:"required"`
	Date int64  `json:"date" validate:"required"`
}

type UpdateTournamentInput struct {
	ID   string  `json:"id" validate:"required"`
	Name *string `json:"name"`
	Date *int64  `json:"date"`
}

// TournamentView is a tournament with its mapping rows populated: the raw
// players id array is replaced by entries carrying the full player record.
type TournamentView struct {
	models.Tournament
	Players []models.MappingEntry `json:"players"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]TournamentView, error)
	UpdateTournament(ctx context.Context, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	mappingRepo    repositories.MappingRepository
	mappings       MappingService
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	mappingRepo repositories.MappingRepository,
	mappings MappingService,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		mappingRepo:    mappingRepo,
		mappings:       mappings,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	_, err := s.tournamentRepo.GetByName(ctx, input.Name)
	if err == nil {
		return nil, ErrTournamentNameConflict
	}
	if !errors.Is(err, repositories.ErrTournamentNotFound) {
		return nil, fmt.Errorf("failed to check tournament name: %w", err)
	}

	tournament := &models.Tournament{
		Name: input.Name,
		Date: input.Date,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

// ListTournaments filters tournaments and populates each result with its
// mapping entries (full player record attached).
func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]TournamentView, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]TournamentView, len(tournaments))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(populateConcurrency)
	for i := range tournaments {
		g.Go(func() error {
			entries, err := s.mappingRepo.ListEntriesByTournament(gCtx, tournaments[i].ID)
			if err != nil {
				return fmt.Errorf("failed to populate tournament %s: %w", tournaments[i].ID, err)
			}
			views[i] = TournamentView{Tournament: tournaments[i], Players: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to find tournament: %w", err)
	}

	if input.Name != nil && *input.Name != tournament.Name {
		existing, err := s.tournamentRepo.GetByName(ctx, *input.Name)
		if err == nil && existing.ID != tournament.ID {
			return nil, ErrTournamentNameConflict
		}
		if err != nil && !errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, fmt.Errorf("failed to check tournament name: %w", err)
		}
		tournament.Name = *input.Name
	}
	if input.Date != nil {
		tournament.Date = *input.Date
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return tournament, nil
}

// DeleteTournament removes the tournament record first, then cascades over
// its mappings. Same non-atomic caveat as player deletion.
func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return s.mappings.CascadeDeleteTournament(ctx, id)
}
