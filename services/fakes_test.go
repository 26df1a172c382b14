package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/pooltrack/tournament-api/models"
	"github.com/pooltrack/tournament-api/repositories"
)

// In-memory repository fakes. They mirror the store's observable behavior
// closely enough for the consistency-engine properties: sentinel errors,
// unique constraints, incremental aggregate updates and back-link arrays.

type fakePlayerRepo struct {
	players map[string]*models.Player
	order   []string

	addContribErr    error
	removeContribErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func copyPlayer(p *models.Player) *models.Player {
	cp := *p
	cp.Tournaments = append([]string(nil), p.Tournaments...)
	return &cp
}

func (r *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	for _, existing := range r.players {
		if existing.Email == p.Email {
			return repositories.ErrPlayerEmailConflict
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tournaments == nil {
		p.Tournaments = []string{}
	}
	r.players[p.ID] = copyPlayer(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id string) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return copyPlayer(p), nil
}

func (r *fakePlayerRepo) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	for _, p := range r.players {
		if p.Email == email {
			return copyPlayer(p), nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(ctx context.Context, filter repositories.ListPlayersFilter) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.order))
	for _, id := range r.order {
		p, ok := r.players[id]
		if !ok {
			continue
		}
		out = append(out, *copyPlayer(p))
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, p *models.Player) error {
	existing, ok := r.players[p.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	existing.Name = p.Name
	existing.Email = p.Email
	existing.JoiningDate = p.JoiningDate
	return nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) AddMappingContribution(ctx context.Context, exec repositories.SQLExecutor, playerID string, win, tip int64, tournamentID string) error {
	if r.addContribErr != nil {
		return r.addContribErr
	}
	p, ok := r.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Win += win
	p.Tip += tip
	p.Balance += win + tip
	p.Tournaments = append(p.Tournaments, tournamentID)
	return nil
}

func (r *fakePlayerRepo) RemoveMappingContribution(ctx context.Context, exec repositories.SQLExecutor, playerID string, win, tip int64, tournamentID string) error {
	if r.removeContribErr != nil {
		return r.removeContribErr
	}
	p, ok := r.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Win -= win
	p.Tip -= tip
	p.Balance -= win + tip
	p.Tournaments = removeValue(p.Tournaments, tournamentID)
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
	order       []string

	addContribErr    error
	removeContribErr error
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
}

func copyTournament(t *models.Tournament) *models.Tournament {
	cp := *t
	cp.Players = append([]string(nil), t.Players...)
	return &cp
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	for _, existing := range r.tournaments {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Players == nil {
		t.Players = []string{}
	}
	r.tournaments[t.ID] = copyTournament(t)
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return copyTournament(t), nil
}

func (r *fakeTournamentRepo) GetByName(ctx context.Context, name string) (*models.Tournament, error) {
	for _, t := range r.tournaments {
		if t.Name == name {
			return copyTournament(t), nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.order))
	for _, id := range r.order {
		t, ok := r.tournaments[id]
		if !ok {
			continue
		}
		if filter.DateFrom != nil && t.Date < *filter.DateFrom {
			continue
		}
		if filter.DateTo != nil && t.Date > *filter.DateTo {
			continue
		}
		if filter.Name != nil && t.Name != *filter.Name {
			continue
		}
		if filter.MinTotalTip != nil && t.TotalTip < *filter.MinTotalTip {
			continue
		}
		if filter.MaxTotalTip != nil && t.TotalTip > *filter.MaxTotalTip {
			continue
		}
		out = append(out, *copyTournament(t))
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	existing, ok := r.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	existing.Name = t.Name
	existing.Date = t.Date
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) AddPlayerContribution(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, win, tip int64, playerID string) error {
	if r.addContribErr != nil {
		return r.addContribErr
	}
	t, ok := r.tournaments[tournamentID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.TotalWin += win
	t.TotalTip += tip
	t.Players = append(t.Players, playerID)
	return nil
}

func (r *fakeTournamentRepo) RemovePlayerContribution(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, win, tip int64, playerID string) error {
	if r.removeContribErr != nil {
		return r.removeContribErr
	}
	t, ok := r.tournaments[tournamentID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.TotalWin -= win
	t.TotalTip -= tip
	t.Players = removeValue(t.Players, playerID)
	return nil
}

type fakeMappingRepo struct {
	mappings []*models.PlayerTournamentMapping
	players  *fakePlayerRepo
}

func newFakeMappingRepo(players *fakePlayerRepo) *fakeMappingRepo {
	return &fakeMappingRepo{players: players}
}

func copyMapping(m *models.PlayerTournamentMapping) *models.PlayerTournamentMapping {
	cp := *m
	return &cp
}

func (r *fakeMappingRepo) Create(ctx context.Context, m *models.PlayerTournamentMapping) error {
	for _, existing := range r.mappings {
		if existing.PlayerID == m.PlayerID && existing.TournamentID == m.TournamentID {
			return repositories.ErrMappingConflict
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.mappings = append(r.mappings, copyMapping(m))
	return nil
}

func (r *fakeMappingRepo) FindByID(ctx context.Context, id string) (*models.PlayerTournamentMapping, error) {
	for _, m := range r.mappings {
		if m.ID == id {
			return copyMapping(m), nil
		}
	}
	return nil, repositories.ErrMappingNotFound
}

func (r *fakeMappingRepo) FindByPlayerAndTournament(ctx context.Context, playerID, tournamentID string) (*models.PlayerTournamentMapping, error) {
	for _, m := range r.mappings {
		if m.PlayerID == playerID && m.TournamentID == tournamentID {
			return copyMapping(m), nil
		}
	}
	return nil, repositories.ErrMappingNotFound
}

func (r *fakeMappingRepo) ListByPlayer(ctx context.Context, playerID string) ([]*models.PlayerTournamentMapping, error) {
	out := make([]*models.PlayerTournamentMapping, 0)
	for _, m := range r.mappings {
		if m.PlayerID == playerID {
			out = append(out, copyMapping(m))
		}
	}
	return out, nil
}

func (r *fakeMappingRepo) ListByTournament(ctx context.Context, tournamentID string) ([]*models.PlayerTournamentMapping, error) {
	out := make([]*models.PlayerTournamentMapping, 0)
	for _, m := range r.mappings {
		if m.TournamentID == tournamentID {
			out = append(out, copyMapping(m))
		}
	}
	return out, nil
}

func (r *fakeMappingRepo) ListEntriesByTournament(ctx context.Context, tournamentID string) ([]models.MappingEntry, error) {
	out := make([]models.MappingEntry, 0)
	for _, m := range r.mappings {
		if m.TournamentID != tournamentID {
			continue
		}
		entry := models.MappingEntry{ID: m.ID, Win: m.Win, Tip: m.Tip}
		if p, ok := r.players.players[m.PlayerID]; ok {
			entry.Player = copyPlayer(p)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *fakeMappingRepo) Delete(ctx context.Context, id string) error {
	for i, m := range r.mappings {
		if m.ID == id {
			r.mappings = append(r.mappings[:i], r.mappings[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMappingNotFound
}

func removeValue(values []string, value string) []string {
	out := values[:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
