package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pooltrack/tournament-api/models"
	"github.com/pooltrack/tournament-api/repositories"
)

type CreatePlayerInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	JoiningDate int64  `json:"joiningDate"`
}

type UpdatePlayerInput struct {
	ID    string  `json:"id" validate:"required"`
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Date  *int64  `json:"date"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, filter repositories.ListPlayersFilter) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	mappings   MappingService
}

func NewPlayerService(playerRepo repositories.PlayerRepository, mappings MappingService) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		mappings:   mappings,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	_, err := s.playerRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrPlayerEmailConflict
	}
	if !errors.Is(err, repositories.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to check player email: %w", err)
	}

	player := &models.Player{
		Name:        input.Name,
		Email:       input.Email,
		JoiningDate: input.JoiningDate,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerEmailConflict) {
			return nil, ErrPlayerEmailConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, filter repositories.ListPlayersFilter) ([]models.Player, error) {
	return s.playerRepo.List(ctx, filter)
}

func (s *playerService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	if input.Email != nil && *input.Email != player.Email {
		existing, err := s.playerRepo.GetByEmail(ctx, *input.Email)
		if err == nil && existing.ID != player.ID {
			return nil, ErrPlayerEmailConflict
		}
		if err != nil && !errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to check player email: %w", err)
		}
		player.Email = *input.Email
	}
	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Date != nil {
		player.JoiningDate = *input.Date
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerEmailConflict):
			return nil, ErrPlayerEmailConflict
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

// DeletePlayer removes the player record first, then cascades over its
// mappings. The cascade is not atomic: a failure mid-way leaves the deletion
// half-applied.
func (s *playerService) DeletePlayer(ctx context.Context, id string) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return s.mappings.CascadeDeletePlayer(ctx, id)
}
