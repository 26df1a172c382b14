package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestBuildListPlayersQueryNoFilters(t *testing.T) {
	query, args := buildListPlayersQuery(ListPlayersFilter{})

	assert.Equal(t,
		`SELECT `+selectPlayerColumns+` FROM players WHERE 1=1 ORDER BY created_at ASC`,
		query)
	assert.Empty(t, args)
}

func TestBuildListPlayersQueryBoundedRange(t *testing.T) {
	query, args := buildListPlayersQuery(ListPlayersFilter{
		MinTip: int64Ptr(10),
		MaxTip: int64Ptr(200),
	})

	// Both bounds of a pair must survive into the query.
	assert.Contains(t, query, " AND tip >= $1")
	assert.Contains(t, query, " AND tip <= $2")
	assert.Equal(t, []interface{}{int64(10), int64(200)}, args)
}

func TestBuildListPlayersQueryNameOrEmailBindsOneArg(t *testing.T) {
	query, args := buildListPlayersQuery(ListPlayersFilter{
		NameOrEmail: strPtr("alice@example.com"),
	})

	assert.Contains(t, query, " AND (name = $1 OR email = $1)")
	assert.Equal(t, []interface{}{"alice@example.com"}, args)
}

func TestBuildListPlayersQueryArgNumberingAcrossFilters(t *testing.T) {
	query, args := buildListPlayersQuery(ListPlayersFilter{
		JoinedAfter:  int64Ptr(1000),
		JoinedBefore: int64Ptr(2000),
		NameOrEmail:  strPtr("alice"),
		MinBalance:   int64Ptr(50),
		MaxWin:       int64Ptr(500),
	})

	assert.Equal(t,
		`SELECT `+selectPlayerColumns+` FROM players WHERE 1=1`+
			` AND joining_date >= $1 AND joining_date <= $2`+
			` AND (name = $3 OR email = $3)`+
			` AND balance >= $4`+
			` AND win <= $5`+
			` ORDER BY created_at ASC`,
		query)
	assert.Equal(t, []interface{}{int64(1000), int64(2000), "alice", int64(50), int64(500)}, args)
}

func TestBuildListTournamentsQueryNoFilters(t *testing.T) {
	query, args := buildListTournamentsQuery(ListTournamentsFilter{})

	assert.Equal(t,
		`SELECT `+selectTournamentColumns+` FROM tournaments WHERE 1=1 ORDER BY created_at ASC`,
		query)
	assert.Empty(t, args)
}

func TestBuildListTournamentsQueryAllFilters(t *testing.T) {
	query, args := buildListTournamentsQuery(ListTournamentsFilter{
		DateFrom:    int64Ptr(1000),
		DateTo:      int64Ptr(2000),
		Name:        strPtr("Spring Open"),
		MinTotalTip: int64Ptr(5),
		MaxTotalTip: int64Ptr(50),
	})

	assert.Equal(t,
		`SELECT `+selectTournamentColumns+` FROM tournaments WHERE 1=1`+
			` AND date >= $1 AND date <= $2`+
			` AND name = $3`+
			` AND total_tip >= $4 AND total_tip <= $5`+
			` ORDER BY created_at ASC`,
		query)
	assert.Equal(t, []interface{}{int64(1000), int64(2000), "Spring Open", int64(5), int64(50)}, args)
}
