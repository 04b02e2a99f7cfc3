package attendance

import (
	"net/http"

	"github.com/nidhidattani13/ems/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)

	// ErrOnApprovedLeave carries its own code so clients can disable the
	// sign-in control rather than show a generic validation failure.
	ErrOnApprovedLeave = apperror.New(
		apperror.CodeEligibilityConflict,
		"Sign-in is blocked by an approved full-day leave covering today",
		http.StatusConflict,
	)

	ErrNotSignedIn = apperror.New(
		apperror.CodeInvalidState,
		"No sign-in recorded for today",
		http.StatusBadRequest,
	)

	ErrSignOutBeforeSignIn = apperror.New(
		apperror.CodeValidationError,
		"sign_out_time must not be before sign_in_time",
		http.StatusBadRequest,
	)

	ErrDuplicateRecord = apperror.New(
		apperror.CodeConflict,
		"An attendance record already exists for this employee and date",
		http.StatusConflict,
	)
)
