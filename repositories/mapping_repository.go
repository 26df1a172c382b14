package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pooltrack/tournament-api/models"
)

var (
	ErrMappingNotFound = errors.New("mapping not found")
	ErrMappingConflict = errors.New("mapping conflict: player already assigned to this tournament")
)

type MappingRepository interface {
	Create(ctx context.Context, mapping *models.PlayerTournamentMapping) error
	FindByID(ctx context.Context, id string) (*models.PlayerTournamentMapping, error)
	FindByPlayerAndTournament(ctx context.Context, playerID, tournamentID string) (*models.PlayerTournamentMapping, error)
	ListByPlayer(ctx context.Context, playerID string) ([]*models.PlayerTournamentMapping, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]*models.PlayerTournamentMapping, error)
	ListEntriesByTournament(ctx context.Context, tournamentID string) ([]models.MappingEntry, error)
	Delete(ctx context.Context, id string) error
}

type postgresMappingRepository struct {
	db *sql.DB
}

func NewPostgresMappingRepository(db *sql.DB) MappingRepository {
	return &postgresMappingRepository{db: db}
}

const selectMappingColumns = `id, win, tip, tournament_id, player_id, created_at`

func (r *postgresMappingRepository) scanMapping(rowScanner interface {
	Scan(dest ...interface{}) error
}, m *models.PlayerTournamentMapping) error {
	return rowScanner.Scan(
		&m.ID,
		&m.Win,
		&m.Tip,
		&m.TournamentID,
		&m.PlayerID,
		&m.CreatedAt,
	)
}

// Create inserts the mapping row. The unique (player_id, tournament_id)
// constraint makes the insert the authoritative duplicate check: a pair that
// slipped past the service pre-check still cannot commit twice.
func (r *postgresMappingRepository) Create(ctx context.Context, m *models.PlayerTournamentMapping) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	query := `
		INSERT INTO player_tournament_mappings (id, player_id, tournament_id, win, tip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.ID,
		m.PlayerID,
		m.TournamentID,
		m.Win,
		m.Tip,
	).Scan(&m.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "mappings_player_id_tournament_id_key" {
				return ErrMappingConflict
			}
		}
		return fmt.Errorf("failed to create mapping: %w", err)
	}
	return nil
}

func (r *postgresMappingRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.PlayerTournamentMapping, error) {
	m := &models.PlayerTournamentMapping{}
	row := r.db.QueryRowContext(ctx, query, args...)
	err := r.scanMapping(row, m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMappingNotFound
		}
		return nil, fmt.Errorf("failed to find mapping: %w", err)
	}
	return m, nil
}

func (r *postgresMappingRepository) FindByID(ctx context.Context, id string) (*models.PlayerTournamentMapping, error) {
	query := `SELECT ` + selectMappingColumns + ` FROM player_tournament_mappings WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresMappingRepository) FindByPlayerAndTournament(ctx context.Context, playerID, tournamentID string) (*models.PlayerTournamentMapping, error) {
	query := `SELECT ` + selectMappingColumns + ` FROM player_tournament_mappings WHERE player_id = $1 AND tournament_id = $2`
	return r.findOne(ctx, query, playerID, tournamentID)
}

func (r *postgresMappingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.PlayerTournamentMapping, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	defer rows.Close()

	mappings := make([]*models.PlayerTournamentMapping, 0)
	for rows.Next() {
		var m models.PlayerTournamentMapping
		if err := r.scanMapping(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan mapping row: %w", err)
		}
		mappings = append(mappings, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping rows: %w", err)
	}
	return mappings, nil
}

func (r *postgresMappingRepository) ListByPlayer(ctx context.Context, playerID string) ([]*models.PlayerTournamentMapping, error) {
	query := `SELECT ` + selectMappingColumns + ` FROM player_tournament_mappings WHERE player_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, playerID)
}

func (r *postgresMappingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.PlayerTournamentMapping, error) {
	query := `SELECT ` + selectMappingColumns + ` FROM player_tournament_mappings WHERE tournament_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, tournamentID)
}

// ListEntriesByTournament returns the tournament's mappings with the full
// player record attached. References are plain id values, so a mapping can
// outlive its player; entries keep a nil Player in that case.
func (r *postgresMappingRepository) ListEntriesByTournament(ctx context.Context, tournamentID string) ([]models.MappingEntry, error) {
	query := `
		SELECT
			m.id, m.win, m.tip,
			COALESCE(p.id, ''), COALESCE(p.name, ''), COALESCE(p.email, ''),
			COALESCE(p.joining_date, 0), COALESCE(p.tip, 0), COALESCE(p.win, 0),
			COALESCE(p.balance, 0), COALESCE(p.tournaments, '{}'), COALESCE(p.created_at, to_timestamp(0))
		FROM player_tournament_mappings m
		LEFT JOIN players p ON m.player_id = p.id
		WHERE m.tournament_id = $1
		ORDER BY m.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mapping entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.MappingEntry, 0)
	for rows.Next() {
		var e models.MappingEntry
		var p models.Player
		if err := rows.Scan(
			&e.ID, &e.Win, &e.Tip,
			&p.ID, &p.Name, &p.Email,
			&p.JoiningDate, &p.Tip, &p.Win,
			&p.Balance, pq.Array(&p.Tournaments), &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mapping entry row: %w", err)
		}
		if p.ID != "" {
			e.Player = &p
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping entry rows: %w", err)
	}
	return entries, nil
}

func (r *postgresMappingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM player_tournament_mappings WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}
	return checkAffectedRows(result, ErrMappingNotFound)
}
