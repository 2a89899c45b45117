package department_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"leavetrack/internal/department"
	departmenterrors "leavetrack/internal/department/errors"
	departmentmock "leavetrack/internal/department/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeUserDirectory struct {
	summariesFn func(ctx context.Context, departmentID string) ([]department.UserSummary, error)
}

func (f *fakeUserDirectory) SummariesByDepartment(ctx context.Context, departmentID string) ([]department.UserSummary, error) {
	if f.summariesFn != nil {
		return f.summariesFn(ctx, departmentID)
	}
	return nil, nil
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and invalidates the options cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		rmock.ExpectDel(department.OptionsCacheKey).SetVal(1)

		svc := department.NewService(repo, &fakeUserDirectory{}, rdb)
		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})

		require.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("duplicate name maps to a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		svc := department.NewService(repo, &fakeUserDirectory{}, nil)
		_, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameTaken)
	})
}

func TestDepartmentService_GetOptions(t *testing.T) {
	ctx := context.Background()

	options := []department.DepartmentResponse{
		{ID: uuid.New().String(), Name: "Engineering"},
		{ID: uuid.New().String(), Name: "Support"},
	}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		payload, err := json.Marshal(options)
		require.NoError(t, err)
		rmock.ExpectGet(department.OptionsCacheKey).SetVal(string(payload))

		svc := department.NewService(repo, &fakeUserDirectory{}, rdb)
		got, err := svc.GetOptions(ctx)

		require.NoError(t, err)
		assert.Equal(t, options, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from the repository and fills the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		depts := []department.Department{
			{ID: uuid.MustParse(options[0].ID), Name: "Engineering"},
			{ID: uuid.MustParse(options[1].ID), Name: "Support"},
		}
		repo.EXPECT().FindAll(gomock.Any()).Return(depts, nil)

		payload, err := json.Marshal(options)
		require.NoError(t, err)
		rmock.ExpectGet(department.OptionsCacheKey).RedisNil()
		rmock.ExpectSet(department.OptionsCacheKey, payload, time.Hour).SetVal("OK")

		svc := department.NewService(repo, &fakeUserDirectory{}, rdb)
		got, err := svc.GetOptions(ctx)

		require.NoError(t, err)
		assert.Equal(t, options, got)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("missing department fails not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)

		repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, gorm.ErrRecordNotFound)

		svc := department.NewService(repo, &fakeUserDirectory{}, nil)
		_, err := svc.GetUsers(ctx, uuid.New().String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("existing department lists its roster", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)
		deptID := uuid.New()

		repo.EXPECT().FindByID(gomock.Any(), deptID.String()).
			Return(&department.Department{ID: deptID, Name: "Engineering"}, nil)

		users := &fakeUserDirectory{
			summariesFn: func(ctx context.Context, departmentID string) ([]department.UserSummary, error) {
				return []department.UserSummary{{ID: uuid.New().String(), FirstName: "Alice", LastName: "Moore", Email: "alice@acme.test"}}, nil
			},
		}

		svc := department.NewService(repo, users, nil)
		got, err := svc.GetUsers(ctx, deptID.String())

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing department fails not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)

		repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			Return(nil, gorm.ErrRecordNotFound)

		svc := department.NewService(repo, &fakeUserDirectory{}, nil)
		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("deletes and invalidates the options cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentmock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()
		deptID := uuid.New()

		repo.EXPECT().FindByID(gomock.Any(), deptID.String()).
			Return(&department.Department{ID: deptID, Name: "Engineering"}, nil)
		repo.EXPECT().Delete(gomock.Any(), deptID.String()).Return(nil)
		rmock.ExpectDel(department.OptionsCacheKey).SetVal(1)

		svc := department.NewService(repo, &fakeUserDirectory{}, rdb)
		err := svc.Delete(ctx, deptID.String())

		require.NoError(t, err)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}
