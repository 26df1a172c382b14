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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
)

// ListTournamentsFilter holds the optional constraints of the tournament
// listing. Paired bounds combine into one range, same as ListPlayersFilter.
type ListTournamentsFilter struct {
	DateFrom    *int64
	DateTo      *int64
	Name        *string
	MinTotalTip *int64
	MaxTotalTip *int64
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	GetByName(ctx context.Context, name string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id string) error
	AddPlayerContribution(ctx context.Context, exec SQLExecutor, tournamentID string, win, tip int64, playerID string) error
	RemovePlayerContribution(ctx context.Context, exec SQLExecutor, tournamentID string, win, tip int64, playerID string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const selectTournamentColumns = `id, name, date, total_win, total_tip, players, created_at`

func (r *postgresTournamentRepository) scanTournament(rowScanner interface {
	Scan(dest ...interface{}) error
}, t *models.Tournament) error {
	return rowScanner.Scan(
		&t.ID,
		&t.Name,
		&t.Date,
		&t.TotalWin,
		&t.TotalTip,
		pq.Array(&t.Players),
		&t.CreatedAt,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Players == nil {
		t.Players = []string{}
	}

	query := `
		INSERT INTO tournaments (id, name, date, players)
		VALUES ($1, $2, $3, $4)
		RETURNING total_win, total_tip, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID,
		t.Name,
		t.Date,
		pq.Array(t.Players),
	).Scan(&t.TotalWin, &t.TotalTip, &t.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Tournament, error) {
	t := &models.Tournament{}
	row := r.db.QueryRowContext(ctx, query, args...)
	err := r.scanTournament(row, t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to find tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + selectTournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresTournamentRepository) GetByName(ctx context.Context, name string) (*models.Tournament, error) {
	query := `SELECT ` + selectTournamentColumns + ` FROM tournaments WHERE name = $1`
	return r.findOne(ctx, query, name)
}

func buildListTournamentsQuery(filter ListTournamentsFilter) (string, []interface{}) {
	query := `SELECT ` + selectTournamentColumns + ` FROM tournaments WHERE 1=1`
	args := []interface{}{}
	argID := 1

	appendRange := func(column string, min, max *int64) {
		if min != nil {
			query += fmt.Sprintf(" AND %s >= $%d", column, argID)
			args = append(args, *min)
			argID++
		}
		if max != nil {
			query += fmt.Sprintf(" AND %s <= $%d", column, argID)
			args = append(args, *max)
			argID++
		}
	}

	appendRange("date", filter.DateFrom, filter.DateTo)

	if filter.Name != nil {
		query += fmt.Sprintf(" AND name = $%d", argID)
		args = append(args, *filter.Name)
		argID++
	}

	appendRange("total_tip", filter.MinTotalTip, filter.MaxTotalTip)

	query += " ORDER BY created_at ASC"
	return query, args
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query, args := buildListTournamentsQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := r.scanTournament(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $2, date = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Date)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		}
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// AddPlayerContribution applies one mapping's delta to the tournament totals
// and appends the player back-link.
func (r *postgresTournamentRepository) AddPlayerContribution(ctx context.Context, exec SQLExecutor, tournamentID string, win, tip int64, playerID string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournaments
		SET total_win = total_win + $2,
		    total_tip = total_tip + $3,
		    players = array_append(players, $4)
		WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, tournamentID, win, tip, playerID)
	if err != nil {
		return fmt.Errorf("failed to apply player contribution to tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// RemovePlayerContribution is the exact inverse of AddPlayerContribution.
func (r *postgresTournamentRepository) RemovePlayerContribution(ctx context.Context, exec SQLExecutor, tournamentID string, win, tip int64, playerID string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE tournaments
		SET total_win = total_win - $2,
		    total_tip = total_tip - $3,
		    players = array_remove(players, $4)
		WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, tournamentID, win, tip, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player contribution from tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
