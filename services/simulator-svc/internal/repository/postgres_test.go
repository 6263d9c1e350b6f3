package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRunRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresRunRepository(mock), mock
}

func TestPostgresRunRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	run := &Run{
		ID:                "7b8a9c1d-0000-0000-0000-000000000001",
		Name:              "evening rush",
		SignalCount:       3,
		Rating:            7.33,
		BadScenarioCount:  1,
		WarningCount:      0,
		ComputationTimeMs: 0.42,
		RequestData:       []byte(`{"distances":[100,200,300]}`),
		ResponseData:      []byte(`{"rating":7.33}`),
	}

	createdAt := time.Now()
	mock.ExpectQuery("INSERT INTO simulation_runs").
		WithArgs(
			run.ID, run.Name, run.SignalCount, run.Rating,
			run.BadScenarioCount, run.WarningCount, run.ComputationTimeMs,
			run.RequestData, run.ResponseData,
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	err := repo.Create(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, createdAt, run.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "signal_count", "rating", "bad_scenario_count",
		"warning_count", "computation_time_ms", "request_data", "response_data", "created_at",
	}).AddRow(
		"run-1", "test", 3, 10.0, 0, 0, 0.5,
		[]byte(`{}`), []byte(`{}`), createdAt,
	)

	mock.ExpectQuery("SELECT(.|\n)+FROM simulation_runs").
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := repo.GetByID(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, 3, run.SignalCount)
	assert.Equal(t, 10.0, run.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT(.|\n)+FROM simulation_runs").
		WithArgs("missing").
		WillReturnError(errors.New("no rows in result set"))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestPostgresRunRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM simulation_runs").
		WithArgs("run-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), "run-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM simulation_runs").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestPostgresRunRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	rows := pgxmock.NewRows([]string{
		"id", "name", "signal_count", "rating", "bad_scenario_count", "created_at",
	}).
		AddRow("run-2", "b", 5, 8.0, 1, time.Now()).
		AddRow("run-1", "a", 3, 10.0, 0, time.Now())

	mock.ExpectQuery("SELECT id, name, signal_count").
		WithArgs(20, 0).
		WillReturnRows(rows)

	results, total, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, results, 2)
	assert.Equal(t, "run-2", results[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunRepository_List_WithRatingFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	minRating := 5.0
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(minRating).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	mock.ExpectQuery("SELECT id, name, signal_count").
		WithArgs(minRating, 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "signal_count", "rating", "bad_scenario_count", "created_at",
		}))

	results, total, err := repo.List(context.Background(), &ListOptions{
		Limit:  10,
		Filter: &ListFilter{MinRating: &minRating},
		Sort:   SortByRatingDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildOrderBy(t *testing.T) {
	repo := &PostgresRunRepository{}

	tests := []struct {
		sort SortOrder
		want string
	}{
		{SortByCreatedDesc, "created_at DESC"},
		{SortByCreatedAsc, "created_at ASC"},
		{SortByRatingDesc, "rating DESC"},
		{SortByRatingAsc, "rating ASC"},
		{SortOrder("unknown"), "created_at DESC"},
	}

	for _, tt := range tests {
		if got := repo.buildOrderBy(tt.sort); got != tt.want {
			t.Errorf("buildOrderBy(%s) = %s, want %s", tt.sort, got, tt.want)
		}
	}
}
