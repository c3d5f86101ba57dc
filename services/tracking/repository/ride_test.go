package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/tracking"
	"github.com/piresc/carpool/services/tracking/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func TestIsAssignedDriver(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    bool
		wantErr bool
	}{
		{name: "assigned", rows: sqlmock.NewRows([]string{"exists"}).AddRow(true), want: true},
		{name: "not assigned", rows: sqlmock.NewRows([]string{"exists"}).AddRow(false), want: false},
		{name: "query error", err: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := repository.NewRideRepository(&models.Config{}, db)

			exp := mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM ride_groups")).
				WithArgs(int64(7), "driver-1")
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			got, err := repo.IsAssignedDriver(context.Background(), "driver-1", 7)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsAuthorizedWatcher(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewRideRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM ride_group_members")).
		WithArgs(int64(7), "parent-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	member, err := repo.IsAuthorizedWatcher(context.Background(), "parent-1", 7)

	assert.NoError(t, err)
	assert.True(t, member)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCheckpoints(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewRideRepository(&models.Config{}, db)

	rows := sqlmock.NewRows([]string{"id", "ride_group_id", "kind", "seq", "latitude", "longitude"}).
		AddRow(11, 7, "pickup", 1, 30.05, 31.24).
		AddRow(12, 7, "school", 2, 30.0444, 31.2357)
	mock.ExpectQuery(regexp.QuoteMeta("FROM ride_group_checkpoints")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	checkpoints, err := repo.GetCheckpoints(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, checkpoints, 2)
	assert.Equal(t, models.Checkpoint{ID: 11, RideGroupID: 7, Kind: models.CheckpointPickup, Order: 1, Lat: 30.05, Lng: 31.24}, checkpoints[0])
	assert.Equal(t, models.CheckpointSchool, checkpoints[1].Kind)
	assert.Equal(t, 2, checkpoints[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCheckpoints_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewRideRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM ride_group_checkpoints")).
		WithArgs(int64(7)).
		WillReturnError(assert.AnError)

	_, err := repo.GetCheckpoints(context.Background(), 7)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetActiveRideInstance(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewRideRepository(&models.Config{}, db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM ride_instances")).
			WithArgs(int64(7), "active").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(900))

		id, err := repo.GetActiveRideInstance(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, int64(900), id)
	})

	t.Run("none active", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewRideRepository(&models.Config{}, db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM ride_instances")).
			WithArgs(int64(7), "active").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetActiveRideInstance(context.Background(), 7)

		assert.ErrorIs(t, err, tracking.ErrNoActiveRide)
	})
}

func TestRecordCheckpointArrival(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewRideRepository(&models.Config{}, db)

	at := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)
	arrival := models.CheckpointArrival{
		RideGroupID:    7,
		RideInstanceID: 900,
		Checkpoint:     models.Checkpoint{ID: 12, Kind: models.CheckpointSchool, Order: 2},
		Location:       models.Coordinate{Lat: 30.0444, Lng: 31.2357},
		Geohash:        "stq4yv3jk",
		ArrivedAt:      at,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ride_history")).
		WithArgs(int64(900), int64(7), int64(12), "school", 30.0444, 31.2357, "stq4yv3jk", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordCheckpointArrival(context.Background(), arrival)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRideInstanceComplete(t *testing.T) {
	at := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		result  sql.Result
		err     error
		wantErr bool
	}{
		{name: "completed", result: sqlmock.NewResult(0, 1)},
		{name: "already completed", result: sqlmock.NewResult(0, 0)},
		{name: "exec error", err: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := repository.NewRideRepository(&models.Config{}, db)

			exp := mock.ExpectExec(regexp.QuoteMeta("UPDATE ride_instances")).WithArgs(int64(900), at)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.MarkRideInstanceComplete(context.Background(), 900, at)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
