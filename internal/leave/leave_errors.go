package leave

import (
	"net/http"

	"github.com/nidhidattani13/ems/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	// ErrAlreadyDecided guards the terminal Pending -> Approved/Rejected
	// transition: decided requests cannot be edited or re-decided.
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been decided",
		http.StatusConflict,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the requesting employee can edit this leave request",
		http.StatusForbidden,
	)

	ErrNotDirectReport = apperror.New(
		apperror.CodeForbidden,
		"You can only decide leave requests of your direct reports",
		http.StatusForbidden,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeValidationError,
		"Dates must be valid calendar dates in YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrBackdatedLeave = apperror.New(
		apperror.CodeValidationError,
		"Leave cannot start or end before today",
		http.StatusBadRequest,
	)

	ErrEndBeforeStart = apperror.New(
		apperror.CodeValidationError,
		"End date must not be before start date",
		http.StatusBadRequest,
	)

	ErrCrossMonth = apperror.New(
		apperror.CodeValidationError,
		"Start and end dates must fall within the same calendar month",
		http.StatusBadRequest,
	)

	ErrMonthlyLimitExceeded = apperror.New(
		apperror.CodeValidationError,
		"Requested days exceed the remaining monthly leave balance",
		http.StatusBadRequest,
	)

	ErrHalfDaySessionRequired = apperror.New(
		apperror.CodeValidationError,
		"Half-day session is required for a half-day leave",
		http.StatusBadRequest,
	)
)
