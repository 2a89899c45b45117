package leave_test

import (
	"context"
	"testing"

	"leavetrack/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedRepository(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return leave.NewRepository(gormDB), mock
}

func TestLeaveRepository_SumApprovedWorkDays(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the aggregate for user and year", func(t *testing.T) {
		repo, mock := newMockedRepository(t)
		userID := uuid.New().String()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(work_days\), 0\) FROM "leaves"`).
			WithArgs(userID, 2024, leave.StatusApproved).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(12))

		used, err := repo.SumApprovedWorkDays(ctx, userID, 2024)
		require.NoError(t, err)
		assert.Equal(t, 12, used)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no approved rows yields zero", func(t *testing.T) {
		repo, mock := newMockedRepository(t)
		userID := uuid.New().String()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(work_days\), 0\) FROM "leaves"`).
			WithArgs(userID, 2024, leave.StatusApproved).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		used, err := repo.SumApprovedWorkDays(ctx, userID, 2024)
		require.NoError(t, err)
		assert.Zero(t, used)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_Delete(t *testing.T) {
	repo, mock := newMockedRepository(t)
	id := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "leaves"`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
