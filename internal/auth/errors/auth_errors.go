package autherrors

import (
	"net/http"

	"leavetrack/internal/shared/apperror"
)

var (
	// Deliberately generic so clients cannot probe which field was wrong.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrRefreshTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"refresh token is not recognized",
		http.StatusUnauthorized,
	)
	ErrRefreshTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"refresh token expired, please login again",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"could not generate token",
		http.StatusInternalServerError,
	)
)
