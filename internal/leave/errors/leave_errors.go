package leaveerrors

import (
	"fmt"
	"net/http"
	"time"

	"leavetrack/internal/shared/apperror"
)

var ErrLeaveNotFound = apperror.New(
	apperror.CodeNotFound,
	"Leave request not found",
	http.StatusNotFound,
)

var ErrStartDateInPast = apperror.New(
	apperror.CodeInvalidInput,
	"Leave start date cannot be in the past",
	http.StatusBadRequest,
)

// InvalidDateRange carries both dates so the client can show exactly what was
// rejected.
func InvalidDateRange(start, end time.Time) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("Invalid date range: start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")),
		http.StatusBadRequest,
	)
}

// LeaveLimitExceeded carries the quota numbers for a precise remediation
// message.
func LeaveLimitExceeded(maxDays, usedDays, requestedDays int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("Leave limit exceeded: %d of %d days already used, %d more requested",
			usedDays, maxDays, requestedDays),
		http.StatusUnprocessableEntity,
	)
}
