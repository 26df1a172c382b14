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
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerEmailConflict = errors.New("player email conflict")
)

// ListPlayersFilter holds the optional constraints of the player listing.
// Paired bounds form a single bounded range: when both are set, both
// conjuncts apply.
type ListPlayersFilter struct {
	JoinedAfter  *int64
	JoinedBefore *int64
	NameOrEmail  *string
	MinTip       *int64
	MaxTip       *int64
	MinBalance   *int64
	MaxBalance   *int64
	MinWin       *int64
	MaxWin       *int64
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	GetByEmail(ctx context.Context, email string) (*models.Player, error)
	List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
	AddMappingContribution(ctx context.Context, exec SQLExecutor, playerID string, win, tip int64, tournamentID string) error
	RemoveMappingContribution(ctx context.Context, exec SQLExecutor, playerID string, win, tip int64, tournamentID string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const selectPlayerColumns = `id, name, email, joining_date, tip, win, balance, tournaments, created_at`

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.Player) error {
	return rowScanner.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.JoiningDate,
		&p.Tip,
		&p.Win,
		&p.Balance,
		pq.Array(&p.Tournaments),
		&p.CreatedAt,
	)
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tournaments == nil {
		p.Tournaments = []string{}
	}

	query := `
		INSERT INTO players (id, name, email, joining_date, tournaments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING tip, win, balance, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.JoiningDate,
		pq.Array(p.Tournaments),
	).Scan(&p.Tip, &p.Win, &p.Balance, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "players_email_key" {
				return ErrPlayerEmailConflict
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Player, error) {
	p := &models.Player{}
	row := r.db.QueryRowContext(ctx, query, args...)
	err := r.scanPlayer(row, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + selectPlayerColumns + ` FROM players WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresPlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	query := `SELECT ` + selectPlayerColumns + ` FROM players WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func buildListPlayersQuery(filter ListPlayersFilter) (string, []interface{}) {
	query := `SELECT ` + selectPlayerColumns + ` FROM players WHERE 1=1`
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

	appendRange("joining_date", filter.JoinedAfter, filter.JoinedBefore)

	// The only disjunction in any listing: one term matching name or email.
	if filter.NameOrEmail != nil {
		query += fmt.Sprintf(" AND (name = $%d OR email = $%d)", argID, argID)
		args = append(args, *filter.NameOrEmail)
		argID++
	}

	appendRange("tip", filter.MinTip, filter.MaxTip)
	appendRange("balance", filter.MinBalance, filter.MaxBalance)
	appendRange("win", filter.MinWin, filter.MaxWin)

	query += " ORDER BY created_at ASC"
	return query, args
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error) {
	query, args := buildListPlayersQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := r.scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players
		SET name = $2, email = $3, joining_date = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Email, p.JoiningDate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "players_email_key" {
				return ErrPlayerEmailConflict
			}
		}
		return fmt.Errorf("failed to update player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM players WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// AddMappingContribution applies one mapping's delta to the player's
// aggregates and appends the tournament back-link, in a single statement.
func (r *postgresPlayerRepository) AddMappingContribution(ctx context.Context, exec SQLExecutor, playerID string, win, tip int64, tournamentID string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET win = win + $2,
		    tip = tip + $3,
		    balance = balance + $2 + $3,
		    tournaments = array_append(tournaments, $4)
		WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, playerID, win, tip, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to apply mapping contribution to player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// RemoveMappingContribution is the exact inverse of AddMappingContribution.
func (r *postgresPlayerRepository) RemoveMappingContribution(ctx context.Context, exec SQLExecutor, playerID string, win, tip int64, tournamentID string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET win = win - $2,
		    tip = tip - $3,
		    balance = balance - $2 - $3,
		    tournaments = array_remove(tournaments, $4)
		WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, playerID, win, tip, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to remove mapping contribution from player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
