package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nidhidattani13/ems/internal/leavepolicy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepo struct {
	requests    []LeaveRequest
	designation string
	reports     map[string]string
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeLeaveRepo) Create(ctx context.Context, req *LeaveRequest) error {
	f.requests = append(f.requests, *req)
	return nil
}
func (f *fakeLeaveRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	for i := range f.requests {
		if f.requests[i].ID.String() == id {
			return &f.requests[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) Update(ctx context.Context, req *LeaveRequest) error {
	for i := range f.requests {
		if f.requests[i].ID == req.ID {
			f.requests[i] = *req
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeLeaveRepo) ListAll(ctx context.Context) ([]LeaveRequest, error) {
	return f.requests, nil
}
func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeLeaveRepo) ListByReportingHead(ctx context.Context, headID string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, r := range f.requests {
		if f.reports[r.EmployeeID.String()] == headID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeLeaveRepo) ListSameTypeInMonth(ctx context.Context, employeeID, leaveTypeID string, monthStart, monthEnd time.Time, excludeID string) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID.String() != employeeID || r.LeaveTypeID.String() != leaveTypeID {
			continue
		}
		if r.LeaveStatus == StatusRejected {
			continue
		}
		if r.StartDate.Before(monthStart) || r.StartDate.After(monthEnd) {
			continue
		}
		if excludeID != "" && r.ID.String() == excludeID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
func (f *fakeLeaveRepo) HasApprovedFullDayCovering(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeID.String() != employeeID || r.LeaveStatus != StatusApproved || r.IsHalfDay || !r.Status {
			continue
		}
		if !day.Before(r.StartDate) && !day.After(r.EndDate) {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeLeaveRepo) FindEmployeeDesignation(ctx context.Context, employeeID string) (string, error) {
	if f.designation == "" {
		return "", gorm.ErrRecordNotFound
	}
	return f.designation, nil
}
func (f *fakeLeaveRepo) IsDirectReport(ctx context.Context, employeeID, headID string) (bool, error) {
	return f.reports[employeeID] == headID, nil
}

type fakePolicyFinder struct {
	policy *leavepolicy.LeavePolicy
}

func (f *fakePolicyFinder) FindByDesignationAndType(ctx context.Context, designationID, leaveTypeID string) (*leavepolicy.LeavePolicy, error) {
	if f.policy == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.policy, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func existingRequest(employeeID, leaveTypeID uuid.UUID, status string, start, end time.Time) LeaveRequest {
	return LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		StartDate:   start,
		EndDate:     end,
		LeaveStatus: status,
		Status:      true,
	}
}

func TestLedger_UsedDaysSumsInclusiveNonRejected(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	repo := &fakeLeaveRepo{requests: []LeaveRequest{
		existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 3, 4), day(2024, 3, 6)),    // 3 days
		existingRequest(employeeID, leaveTypeID, StatusPending, day(2024, 3, 11), day(2024, 3, 11)),  // 1 day, pending counts
		existingRequest(employeeID, leaveTypeID, StatusRejected, day(2024, 3, 18), day(2024, 3, 20)), // rejected, excluded
		existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 4, 1), day(2024, 4, 3)),   // other month
		existingRequest(employeeID, uuid.New(), StatusApproved, day(2024, 3, 12), day(2024, 3, 12)),  // other type
	}}

	ledger := NewLedger(repo, &fakePolicyFinder{})
	used, err := ledger.UsedDays(context.Background(), employeeID.String(), leaveTypeID.String(), 2024, time.March, "")
	assert.NoError(t, err)
	assert.Equal(t, 4, used)
}

func TestLedger_UsedDaysExcludesEditedRequest(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	edited := existingRequest(employeeID, leaveTypeID, StatusPending, day(2024, 3, 11), day(2024, 3, 12))

	repo := &fakeLeaveRepo{requests: []LeaveRequest{
		existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 3, 4), day(2024, 3, 6)),
		edited,
	}}

	ledger := NewLedger(repo, &fakePolicyFinder{})
	used, err := ledger.UsedDays(context.Background(), employeeID.String(), leaveTypeID.String(), 2024, time.March, edited.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 3, used)
}

func TestLedger_MonthsLimitNoPolicyMeansNoCap(t *testing.T) {
	repo := &fakeLeaveRepo{designation: uuid.New().String()}
	ledger := NewLedger(repo, &fakePolicyFinder{})

	limit, err := ledger.MonthsLimit(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Zero(t, limit)
}

func TestLedger_EligibilityBalanceArithmetic(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	// months_limit=5 with 3 approved days already taken in March.
	repo := &fakeLeaveRepo{
		designation: uuid.New().String(),
		requests: []LeaveRequest{
			existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 3, 4), day(2024, 3, 6)),
		},
	}
	ledger := NewLedger(repo, &fakePolicyFinder{policy: &leavepolicy.LeavePolicy{MonthsLimit: 5}})
	ctx := context.Background()

	// 3 more days: 3+3 > 5, rejected.
	err := ledger.CheckEligibility(ctx, employeeID.String(), leaveTypeID.String(),
		Span{Start: day(2024, 3, 11), End: day(2024, 3, 13)}, "")
	assert.ErrorIs(t, err, ErrMonthlyLimitExceeded)

	// 2 more days: 3+2 <= 5, accepted.
	err = ledger.CheckEligibility(ctx, employeeID.String(), leaveTypeID.String(),
		Span{Start: day(2024, 3, 11), End: day(2024, 3, 12)}, "")
	assert.NoError(t, err)

	// Same-size request in April: different month, accepted regardless.
	err = ledger.CheckEligibility(ctx, employeeID.String(), leaveTypeID.String(),
		Span{Start: day(2024, 4, 11), End: day(2024, 4, 13)}, "")
	assert.NoError(t, err)
}

func TestLedger_ZeroMonthsLimitEnforcesNothing(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	repo := &fakeLeaveRepo{
		designation: uuid.New().String(),
		requests: []LeaveRequest{
			existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 3, 1), day(2024, 3, 20)),
		},
	}
	ledger := NewLedger(repo, &fakePolicyFinder{policy: &leavepolicy.LeavePolicy{MonthsLimit: 0}})

	err := ledger.CheckEligibility(context.Background(), employeeID.String(), leaveTypeID.String(),
		Span{Start: day(2024, 3, 21), End: day(2024, 3, 29)}, "")
	assert.NoError(t, err)
}

func TestLedger_OnApprovedFullDayLeave(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	full := existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 3, 14), day(2024, 3, 16))
	repo := &fakeLeaveRepo{requests: []LeaveRequest{full}}
	ledger := NewLedger(repo, &fakePolicyFinder{})
	ctx := context.Background()

	covered, err := ledger.OnApprovedFullDayLeave(ctx, employeeID.String(), day(2024, 3, 15))
	assert.NoError(t, err)
	assert.True(t, covered)

	outside, err := ledger.OnApprovedFullDayLeave(ctx, employeeID.String(), day(2024, 3, 17))
	assert.NoError(t, err)
	assert.False(t, outside)

	// The same leave as a half-day never blocks.
	session := SessionMorning
	repo.requests[0].IsHalfDay = true
	repo.requests[0].HalfDaySession = &session
	halfDay, err := ledger.OnApprovedFullDayLeave(ctx, employeeID.String(), day(2024, 3, 15))
	assert.NoError(t, err)
	assert.False(t, halfDay)
}
