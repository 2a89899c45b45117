package auth_test

import (
	"context"
	"testing"
	"time"

	"leavetrack/internal/auth"
	autherrors "leavetrack/internal/auth/errors"
	"leavetrack/internal/config"
	"leavetrack/internal/department"
	"leavetrack/internal/user"
	usererrors "leavetrack/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeTokenRepository keeps tokens in memory so rotation can be observed end
// to end.
type fakeTokenRepository struct {
	byToken map[string]*auth.RefreshToken
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{byToken: map[string]*auth.RefreshToken{}}
}

func (f *fakeTokenRepository) WithTx(tx *gorm.DB) auth.Repository { return f }

func (f *fakeTokenRepository) Create(ctx context.Context, t *auth.RefreshToken) error {
	f.byToken[t.Token] = t
	return nil
}

func (f *fakeTokenRepository) FindByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	if t, ok := f.byToken[token]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTokenRepository) FindByUser(ctx context.Context, userID string) (*auth.RefreshToken, error) {
	for _, t := range f.byToken {
		if t.UserID.String() == userID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	for k, t := range f.byToken {
		if t.UserID.String() == userID {
			delete(f.byToken, k)
		}
	}
	return nil
}

func (f *fakeTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

func (f *fakeTokenRepository) countForUser(userID string) int {
	n := 0
	for _, t := range f.byToken {
		if t.UserID.String() == userID {
			n++
		}
	}
	return n
}

type fakeUserRepository struct {
	findByEmailFn     func(ctx context.Context, email string) (*user.User, error)
	findByIDFn        func(ctx context.Context, id string) (*user.User, error)
	createFn          func(ctx context.Context, u *user.User) error
	updateLastLoginFn func(ctx context.Context, id string, at time.Time) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id string) error    { return nil }

func (f *fakeUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if f.updateLastLoginFn != nil {
		return f.updateLastLoginFn(ctx, id, at)
	}
	return nil
}

func (f *fakeUserRepository) SummariesByDepartment(ctx context.Context, departmentID string) ([]department.UserSummary, error) {
	return nil, nil
}

type fakeDepartmentRepository struct {
	findByIDFn func(ctx context.Context, id string) (*department.Department, error)
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) error { return nil }

type authServiceDeps struct {
	tokens  *fakeTokenRepository
	users   *fakeUserRepository
	depts   *fakeDepartmentRepository
	cfg     *config.TokenConfig
	service auth.Service
}

func newAuthService(t *testing.T) *authServiceDeps {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	deps := &authServiceDeps{
		tokens: newFakeTokenRepository(),
		users:  &fakeUserRepository{},
		depts:  &fakeDepartmentRepository{},
		cfg:    config.NewTokenConfig(),
	}
	deps.service = auth.NewService(deps.tokens, deps.users, deps.depts, deps.cfg, nil)
	return deps
}

func seedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &user.User{
		ID:        uuid.New(),
		FirstName: "Alice",
		LastName:  "Moore",
		Email:     "alice@acme.test",
		Password:  string(hashed),
		Role:      user.RoleUser,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue both tokens and stamp last login", func(t *testing.T) {
		deps := newAuthService(t)
		u := seedUser(t, "password123")
		deps.users.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		stamped := false
		deps.users.updateLastLoginFn = func(ctx context.Context, id string, at time.Time) error {
			stamped = true
			return nil
		}

		resp, err := deps.service.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.True(t, stamped)

		stored, err := deps.tokens.FindByToken(ctx, resp.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID, stored.UserID)
	})

	t.Run("wrong password fails with the generic message", func(t *testing.T) {
		deps := newAuthService(t)
		u := seedUser(t, "password123")
		deps.users.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		_, err := deps.service.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "wrong-password"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email fails identically to a wrong password", func(t *testing.T) {
		deps := newAuthService(t)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Email: "ghost@acme.test", Password: "whatever123"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("second login leaves exactly one live token", func(t *testing.T) {
		deps := newAuthService(t)
		u := seedUser(t, "password123")
		deps.users.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		first, err := deps.service.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "password123"})
		require.NoError(t, err)
		second, err := deps.service.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "password123"})
		require.NoError(t, err)

		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
		assert.Equal(t, 1, deps.tokens.countForUser(u.ID.String()))

		_, err = deps.tokens.FindByToken(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token rotates and returns a fresh pair", func(t *testing.T) {
		deps := newAuthService(t)
		u := seedUser(t, "password123")
		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return u, nil
		}

		old := &auth.RefreshToken{
			ID:         uuid.New(),
			UserID:     u.ID,
			User:       u,
			Token:      uuid.New().String(),
			ExpiryDate: time.Now().Add(time.Hour),
		}
		require.NoError(t, deps.tokens.Create(ctx, old))

		resp, err := deps.service.Refresh(ctx, old.Token)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, old.Token, resp.RefreshToken)

		_, err = deps.tokens.FindByToken(ctx, old.Token)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Equal(t, 1, deps.tokens.countForUser(u.ID.String()))
	})

	t.Run("unknown token fails authentication", func(t *testing.T) {
		deps := newAuthService(t)

		_, err := deps.service.Refresh(ctx, uuid.New().String())
		assert.ErrorIs(t, err, autherrors.ErrRefreshTokenNotFound)
	})

	t.Run("expired token is purged as part of the failure", func(t *testing.T) {
		deps := newAuthService(t)
		u := seedUser(t, "password123")

		expired := &auth.RefreshToken{
			ID:         uuid.New(),
			UserID:     u.ID,
			User:       u,
			Token:      uuid.New().String(),
			ExpiryDate: time.Now().Add(-time.Minute),
		}
		require.NoError(t, deps.tokens.Create(ctx, expired))

		_, err := deps.service.Refresh(ctx, expired.Token)
		assert.ErrorIs(t, err, autherrors.ErrRefreshTokenExpired)

		_, err = deps.tokens.FindByToken(ctx, expired.Token)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the user's token", func(t *testing.T) {
		deps := newAuthService(t)
		u := seedUser(t, "password123")
		deps.users.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return u, nil
		}

		tok := &auth.RefreshToken{ID: uuid.New(), UserID: u.ID, Token: uuid.New().String(), ExpiryDate: time.Now().Add(time.Hour)}
		require.NoError(t, deps.tokens.Create(ctx, tok))

		require.NoError(t, deps.service.Logout(ctx, u.Email))
		assert.Zero(t, deps.tokens.countForUser(u.ID.String()))
	})

	t.Run("unknown email fails not found", func(t *testing.T) {
		deps := newAuthService(t)

		err := deps.service.Logout(ctx, "ghost@acme.test")
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	req := auth.RegisterRequest{
		FirstName:    "Bob",
		LastName:     "Stone",
		PhoneNo:      "555-0100",
		Email:        "bob@acme.test",
		Password:     "password123",
		DepartmentID: uuid.New().String(),
	}

	t.Run("taken email fails conflict", func(t *testing.T) {
		deps := newAuthService(t)
		deps.users.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return seedUser(t, "password123"), nil
		}

		_, err := deps.service.Register(ctx, req)
		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyUsed)
	})

	t.Run("new user is stored hashed with the default role", func(t *testing.T) {
		deps := newAuthService(t)
		deptID := uuid.MustParse(req.DepartmentID)
		deps.depts.findByIDFn = func(ctx context.Context, id string) (*department.Department, error) {
			return &department.Department{ID: deptID, Name: "Engineering"}, nil
		}

		var created *user.User
		deps.users.createFn = func(ctx context.Context, u *user.User) error {
			created = u
			return nil
		}

		resp, err := deps.service.Register(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, user.RoleUser, created.Role)
		assert.NotEqual(t, req.Password, created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(req.Password)))
		assert.Equal(t, "Engineering", *resp.DepartmentName)
	})
}
