package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pooltrack/tournament-api/models"
	"github.com/pooltrack/tournament-api/repositories"
)

type AssignPlayerInput struct {
	Player     string `json:"player" validate:"required"`
	Tournament string `json:"tournament" validate:"required"`
	Win        int64  `json:"win"`
	Tip        int64  `json:"tip"`
}

type RemovePlayerInput struct {
	Player     string `json:"player" validate:"required"`
	Tournament string `json:"tournament" validate:"required"`
}

// MappingService is the consistency engine: every mutation of a mapping row
// goes through here so the denormalized aggregates on Player and Tournament
// stay in step with the mapping rows.
//
// The store offers no transaction across the three collections. Writes run
// in a fixed order (mapping first, then tournament, then player) and a
// failure partway through an assign or remove is answered with compensating
// writes for the steps already applied. Cascade deletes stay best-effort:
// they stop at the first failure without rolling back.
type MappingService interface {
	AssignPlayer(ctx context.Context, input AssignPlayerInput) (*models.PlayerTournamentMapping, error)
	RemovePlayer(ctx context.Context, input RemovePlayerInput) (*models.PlayerTournamentMapping, error)
	CascadeDeletePlayer(ctx context.Context, playerID string) error
	CascadeDeleteTournament(ctx context.Context, tournamentID string) error
}

type mappingService struct {
	mappingRepo    repositories.MappingRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewMappingService(
	mappingRepo repositories.MappingRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	logger *slog.Logger,
) MappingService {
	return &mappingService{
		mappingRepo:    mappingRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

// AssignPlayer creates the mapping row and adds its win/tip to both parents.
func (s *mappingService) AssignPlayer(ctx context.Context, input AssignPlayerInput) (*models.PlayerTournamentMapping, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, input.Tournament)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrPlayerOrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}

	player, err := s.playerRepo.GetByID(ctx, input.Player)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerOrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check player: %w", err)
	}

	// Pre-check for the documented conflict answer. The unique pair
	// constraint on the mapping table is the authoritative guard: a
	// concurrent assign that passes this check still fails on insert.
	_, err = s.mappingRepo.FindByPlayerAndTournament(ctx, player.ID, tournament.ID)
	if err == nil {
		return nil, ErrAlreadyAssigned
	}
	if !errors.Is(err, repositories.ErrMappingNotFound) {
		return nil, fmt.Errorf("failed to check existing mapping: %w", err)
	}

	mapping := &models.PlayerTournamentMapping{
		PlayerID:     player.ID,
		TournamentID: tournament.ID,
		Win:          input.Win,
		Tip:          input.Tip,
	}
	if err := s.mappingRepo.Create(ctx, mapping); err != nil {
		if errors.Is(err, repositories.ErrMappingConflict) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to create mapping: %w", err)
	}

	if err := s.tournamentRepo.AddPlayerContribution(ctx, nil, tournament.ID, input.Win, input.Tip, player.ID); err != nil {
		s.compensateMappingCreate(ctx, mapping)
		return nil, fmt.Errorf("failed to update tournament aggregates: %w", err)
	}

	if err := s.playerRepo.AddMappingContribution(ctx, nil, player.ID, input.Win, input.Tip, tournament.ID); err != nil {
		if compErr := s.tournamentRepo.RemovePlayerContribution(ctx, nil, tournament.ID, input.Win, input.Tip, player.ID); compErr != nil {
			s.logger.Error("assign compensation failed: tournament aggregates left inconsistent",
				slog.String("tournament_id", tournament.ID),
				slog.String("player_id", player.ID),
				slog.Any("error", compErr))
		}
		s.compensateMappingCreate(ctx, mapping)
		return nil, fmt.Errorf("failed to update player aggregates: %w", err)
	}

	return mapping, nil
}

// RemovePlayer deletes the mapping row and subtracts its stored win/tip from
// both parents. The subtracted amounts always come from the stored row, never
// from caller input.
func (s *mappingService) RemovePlayer(ctx context.Context, input RemovePlayerInput) (*models.PlayerTournamentMapping, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, input.Tournament)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrPlayerOrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}

	player, err := s.playerRepo.GetByID(ctx, input.Player)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerOrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check player: %w", err)
	}

	mapping, err := s.mappingRepo.FindByPlayerAndTournament(ctx, player.ID, tournament.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrMappingNotFound) {
			return nil, ErrNotAssigned
		}
		return nil, fmt.Errorf("failed to find mapping: %w", err)
	}

	if err := s.mappingRepo.Delete(ctx, mapping.ID); err != nil {
		return nil, fmt.Errorf("failed to delete mapping: %w", err)
	}

	if err := s.tournamentRepo.RemovePlayerContribution(ctx, nil, tournament.ID, mapping.Win, mapping.Tip, player.ID); err != nil {
		s.compensateMappingDelete(ctx, mapping)
		return nil, fmt.Errorf("failed to update tournament aggregates: %w", err)
	}

	if err := s.playerRepo.RemoveMappingContribution(ctx, nil, player.ID, mapping.Win, mapping.Tip, tournament.ID); err != nil {
		if compErr := s.tournamentRepo.AddPlayerContribution(ctx, nil, tournament.ID, mapping.Win, mapping.Tip, player.ID); compErr != nil {
			s.logger.Error("remove compensation failed: tournament aggregates left inconsistent",
				slog.String("tournament_id", tournament.ID),
				slog.String("player_id", player.ID),
				slog.Any("error", compErr))
		}
		s.compensateMappingDelete(ctx, mapping)
		return nil, fmt.Errorf("failed to update player aggregates: %w", err)
	}

	return mapping, nil
}

// CascadeDeletePlayer adjusts and removes every mapping of an already
// deleted player. Best-effort: a failure leaves the remaining mappings
// untouched, already processed ones stay applied.
func (s *mappingService) CascadeDeletePlayer(ctx context.Context, playerID string) error {
	mappings, err := s.mappingRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to list mappings for player cascade: %w", err)
	}

	for _, m := range mappings {
		err := s.tournamentRepo.RemovePlayerContribution(ctx, nil, m.TournamentID, m.Win, m.Tip, playerID)
		if err != nil {
			// A missing counterpart is an orphaned reference; the mapping
			// row itself is still removed below.
			if !errors.Is(err, repositories.ErrTournamentNotFound) {
				return fmt.Errorf("failed to adjust tournament %s during player cascade: %w", m.TournamentID, err)
			}
			s.logger.Warn("cascade found mapping referencing missing tournament",
				slog.String("mapping_id", m.ID),
				slog.String("tournament_id", m.TournamentID))
		}
		if err := s.mappingRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete mapping %s during player cascade: %w", m.ID, err)
		}
	}
	return nil
}

// CascadeDeleteTournament is the symmetric cascade for a deleted tournament.
func (s *mappingService) CascadeDeleteTournament(ctx context.Context, tournamentID string) error {
	mappings, err := s.mappingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to list mappings for tournament cascade: %w", err)
	}

	for _, m := range mappings {
		err := s.playerRepo.RemoveMappingContribution(ctx, nil, m.PlayerID, m.Win, m.Tip, tournamentID)
		if err != nil {
			if !errors.Is(err, repositories.ErrPlayerNotFound) {
				return fmt.Errorf("failed to adjust player %s during tournament cascade: %w", m.PlayerID, err)
			}
			s.logger.Warn("cascade found mapping referencing missing player",
				slog.String("mapping_id", m.ID),
				slog.String("player_id", m.PlayerID))
		}
		if err := s.mappingRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete mapping %s during tournament cascade: %w", m.ID, err)
		}
	}
	return nil
}

func (s *mappingService) compensateMappingCreate(ctx context.Context, m *models.PlayerTournamentMapping) {
	if err := s.mappingRepo.Delete(ctx, m.ID); err != nil {
		s.logger.Error("assign compensation failed: orphan mapping row left behind",
			slog.String("mapping_id", m.ID),
			slog.Any("error", err))
	}
}

func (s *mappingService) compensateMappingDelete(ctx context.Context, m *models.PlayerTournamentMapping) {
	if err := s.mappingRepo.Create(ctx, m); err != nil {
		s.logger.Error("remove compensation failed: mapping row could not be restored",
			slog.String("mapping_id", m.ID),
			slog.Any("error", err))
	}
}
