package departmenterrors

import (
	"net/http"

	"leavetrack/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"department name is already in use",
		http.StatusConflict,
	)
)
