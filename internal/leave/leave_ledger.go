package leave

import (
	"context"
	"errors"
	"time"

	"github.com/nidhidattani13/ems/internal/leavepolicy"
	"github.com/nidhidattani13/ems/internal/shared/clock"

	"gorm.io/gorm"
)

// PolicyFinder resolves the active leave policy for a designation and
// leave type. Satisfied by the leavepolicy repository.
type PolicyFinder interface {
	FindByDesignationAndType(ctx context.Context, designationID, leaveTypeID string) (*leavepolicy.LeavePolicy, error)
}

// Ledger is the read-only view over existing leave requests that the
// eligibility check and the attendance sign-in gate consult.
type Ledger struct {
	repo     Repository
	policies PolicyFinder
}

func NewLedger(repo Repository, policies PolicyFinder) *Ledger {
	return &Ledger{repo: repo, policies: policies}
}

// OnApprovedFullDayLeave reports whether employeeID has an approved,
// enabled, non-half-day leave covering day. Half-day leave never
// blocks attendance.
func (l *Ledger) OnApprovedFullDayLeave(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	return l.repo.HasApprovedFullDayCovering(ctx, employeeID, clock.DayOf(day))
}

// MonthsLimit returns the per-calendar-month allowance for the
// employee's designation and the given leave type. A missing policy or
// a zero months_limit both mean no cap, reported as 0.
func (l *Ledger) MonthsLimit(ctx context.Context, employeeID, leaveTypeID string) (int, error) {
	designationID, err := l.repo.FindEmployeeDesignation(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	policy, err := l.policies.FindByDesignationAndType(ctx, designationID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return policy.MonthsLimit, nil
}

// UsedDays sums the inclusive day counts of the employee's same-type,
// non-Rejected requests whose start_date falls in (year, month).
// excludeID drops the request being edited from the sum.
func (l *Ledger) UsedDays(ctx context.Context, employeeID, leaveTypeID string, year int, month time.Month, excludeID string) (int, error) {
	monthStart, monthEnd := clock.MonthBounds(year, month, time.UTC)

	rows, err := l.repo.ListSameTypeInMonth(ctx, employeeID, leaveTypeID, monthStart, monthEnd, excludeID)
	if err != nil {
		return 0, err
	}

	used := 0
	for _, r := range rows {
		used += r.Span().Days()
	}
	return used, nil
}

// CheckEligibility runs the monthly-limit check for a candidate span:
// reject when monthsLimit > 0 and the requested days exceed the
// remaining balance. A zero limit enforces nothing.
func (l *Ledger) CheckEligibility(ctx context.Context, employeeID, leaveTypeID string, span Span, excludeID string) error {
	monthsLimit, err := l.MonthsLimit(ctx, employeeID, leaveTypeID)
	if err != nil {
		return err
	}
	if monthsLimit <= 0 {
		return nil
	}

	used, err := l.UsedDays(ctx, employeeID, leaveTypeID, span.Start.Year(), span.Start.Month(), excludeID)
	if err != nil {
		return err
	}

	if span.Days() > monthsLimit-used {
		return ErrMonthlyLimitExceeded
	}
	return nil
}
