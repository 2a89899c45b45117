package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "leavetrack/internal/auth/errors"
	"leavetrack/internal/config"
	departmenterrors "leavetrack/internal/department/errors"
	usererrors "leavetrack/internal/user/errors"

	"leavetrack/internal/department"
	"leavetrack/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResponse, error)
	Logout(ctx context.Context, email string) error
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	GetMe(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	repo        Repository
	users       user.Repository
	departments department.Repository
	tokens      *config.TokenConfig
	db          *gorm.DB
	logger      *zap.Logger
}

// NewService wires the session layer. db may be nil; rotation then runs
// without a transaction, which is acceptable only in tests.
func NewService(
	repo Repository,
	users user.Repository,
	departments department.Repository,
	tokens *config.TokenConfig,
	db *gorm.DB,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:        repo,
		users:       users,
		departments: departments,
		tokens:      tokens,
		db:          db,
		logger:      l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, u.ID.String(), now); err != nil {
		s.logger.Warn("stamp last login failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}
	u.LastLoginAt = &now

	resp, err := s.issueTokens(ctx, u)
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return resp, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (AuthResponse, error) {
	stored, err := s.repo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrRefreshTokenNotFound
		}
		return AuthResponse{}, err
	}

	if err := s.verifyExpiration(ctx, stored); err != nil {
		return AuthResponse{}, err
	}

	u := stored.User
	if u == nil {
		loaded, err := s.users.FindByID(ctx, stored.UserID.String())
		if err != nil {
			return AuthResponse{}, autherrors.ErrRefreshTokenNotFound
		}
		u = loaded
	}

	resp, err := s.issueTokens(ctx, u)
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("refresh success", zap.String("user_id", u.ID.String()))
	return resp, nil
}

// verifyExpiration purges an expired token as part of the check; there is no
// background sweep.
func (s *service) verifyExpiration(ctx context.Context, t *RefreshToken) error {
	if !t.Expired(time.Now()) {
		return nil
	}
	if err := s.repo.DeleteByToken(ctx, t.Token); err != nil {
		s.logger.Error("purge expired refresh token failed", zap.Error(err))
	}
	return autherrors.ErrRefreshTokenExpired
}

func (s *service) Logout(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	if err := s.repo.DeleteByUser(ctx, u.ID.String()); err != nil {
		return err
	}

	s.logger.Info("logout success", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, usererrors.ErrEmailAlreadyUsed
	}

	dept, err := s.departments.FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return user.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, err
	}

	u := &user.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNo:      req.PhoneNo,
		Email:        req.Email,
		Password:     string(hashed),
		Role:         user.RoleUser,
		DepartmentID: &dept.ID,
		Department:   dept,
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return user.UserResponse{}, err
	}

	s.logger.Info("register success", zap.String("user_id", u.ID.String()))
	return user.MapToResponse(*u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}
	return user.MapToResponse(*u), nil
}

func (s *service) issueTokens(ctx context.Context, u *user.User) (AuthResponse, error) {
	accessTTL := s.tokens.AccessTokenTTL()

	accessToken, err := s.generateAccessToken(u, accessTTL)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	refreshToken, err := s.createRefreshToken(ctx, u.ID)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
		User:         user.MapToResponse(*u),
	}, nil
}

// createRefreshToken rotates the user's token: delete-then-insert runs in one
// transaction so a failure leaves either the old row or the new one, never
// both.
func (s *service) createRefreshToken(ctx context.Context, userID uuid.UUID) (*RefreshToken, error) {
	t := &RefreshToken{
		ID:         uuid.New(),
		UserID:     userID,
		Token:      uuid.New().String(),
		ExpiryDate: time.Now().Add(s.tokens.RefreshTokenTTL()),
	}

	rotate := func(repo Repository) error {
		if err := repo.DeleteByUser(ctx, userID.String()); err != nil {
			return err
		}
		return repo.Create(ctx, t)
	}

	var err error
	if s.db == nil {
		err = rotate(s.repo)
	} else {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return rotate(s.repo.WithTx(tx))
		})
	}
	if err != nil {
		s.logger.Error("rotate refresh token failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	return t, nil
}

func (s *service) generateAccessToken(u *user.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
