package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nidhidattani13/ems/internal/leavepolicy"
	"github.com/nidhidattani13/ems/internal/messaging/kafka"
	"github.com/nidhidattani13/ems/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

// March 15th, mid-morning. All submission tests run against this clock.
var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *fakeLeaveRepo, policy *leavepolicy.LeavePolicy) (Service, *fakeOutbox, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	outbox := &fakeOutbox{}
	ledger := NewLedger(repo, &fakePolicyFinder{policy: policy})
	svc := NewService(db, repo, ledger, outbox, clock.Fixed(testNow))
	return svc, outbox, mock, func() { db.Close() }
}

func TestService_SubmitRoundTrip(t *testing.T) {
	repo := &fakeLeaveRepo{designation: uuid.New().String()}
	svc, _, mock, closeDB := newTestService(t, repo, nil)
	defer closeDB()

	employeeID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Submit(context.Background(), employeeID, CreateLeaveRequestRequest{
		LeaveTypeID: uuid.New().String(),
		StartDate:   "2024-03-20",
		EndDate:     "2024-03-22",
		Reason:      "family event",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.LeaveStatus)
	assert.True(t, resp.Status)

	fetched, err := svc.GetByID(context.Background(), resp.ID)
	assert.NoError(t, err)
	assert.Equal(t, resp.StartDate, fetched.StartDate)
	assert.Equal(t, resp.EndDate, fetched.EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SubmitValidationOrder(t *testing.T) {
	repo := &fakeLeaveRepo{designation: uuid.New().String()}
	svc, _, _, closeDB := newTestService(t, repo, nil)
	defer closeDB()

	ctx := context.Background()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	cases := []struct {
		name    string
		req     CreateLeaveRequestRequest
		wantErr error
	}{
		{
			name:    "unparseable date",
			req:     CreateLeaveRequestRequest{LeaveTypeID: leaveTypeID, StartDate: "20/03/2024", EndDate: "2024-03-21"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "backdated start",
			req:     CreateLeaveRequestRequest{LeaveTypeID: leaveTypeID, StartDate: "2024-03-10", EndDate: "2024-03-20"},
			wantErr: ErrBackdatedLeave,
		},
		{
			name:    "end before start",
			req:     CreateLeaveRequestRequest{LeaveTypeID: leaveTypeID, StartDate: "2024-03-22", EndDate: "2024-03-20"},
			wantErr: ErrEndBeforeStart,
		},
		{
			name:    "cross month",
			req:     CreateLeaveRequestRequest{LeaveTypeID: leaveTypeID, StartDate: "2024-03-30", EndDate: "2024-04-02"},
			wantErr: ErrCrossMonth,
		},
		{
			name:    "half day without session",
			req:     CreateLeaveRequestRequest{LeaveTypeID: leaveTypeID, StartDate: "2024-03-20", EndDate: "2024-03-20", IsHalfDay: true},
			wantErr: ErrHalfDaySessionRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, employeeID, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Empty(t, repo.requests)
}

func TestService_SubmitMonthlyLimitConcrete(t *testing.T) {
	// months_limit=2, no existing March leave: a 2-day request fits
	// exactly, then a 1-day request finds the balance at zero.
	repo := &fakeLeaveRepo{designation: uuid.New().String()}
	svc, _, mock, closeDB := newTestService(t, repo, &leavepolicy.LeavePolicy{MonthsLimit: 2})
	defer closeDB()

	ctx := context.Background()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Submit(ctx, employeeID, CreateLeaveRequestRequest{
		LeaveTypeID: leaveTypeID,
		StartDate:   "2024-03-20",
		EndDate:     "2024-03-21",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, first.LeaveStatus)

	_, err = svc.Submit(ctx, employeeID, CreateLeaveRequestRequest{
		LeaveTypeID: leaveTypeID,
		StartDate:   "2024-03-22",
		EndDate:     "2024-03-22",
	})
	assert.ErrorIs(t, err, ErrMonthlyLimitExceeded)
	assert.Len(t, repo.requests, 1)
}

func TestService_EditExcludesSelfFromBalance(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	pending := existingRequest(employeeID, leaveTypeID, StatusPending, day(2024, 3, 20), day(2024, 3, 21))

	repo := &fakeLeaveRepo{
		designation: uuid.New().String(),
		requests:    []LeaveRequest{pending},
	}
	svc, _, mock, closeDB := newTestService(t, repo, &leavepolicy.LeavePolicy{MonthsLimit: 2})
	defer closeDB()

	// Moving the same 2-day request later in the month only works
	// because the record itself is excluded from the used sum.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Edit(context.Background(), pending.ID.String(), employeeID.String(), UpdateLeaveRequestRequest{
		LeaveTypeID: leaveTypeID.String(),
		StartDate:   "2024-03-25",
		EndDate:     "2024-03-26",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-25", resp.StartDate)
}

func TestService_EditOnlyByOwnerWhilePending(t *testing.T) {
	employeeID := uuid.New()
	leaveTypeID := uuid.New()
	pending := existingRequest(employeeID, leaveTypeID, StatusPending, day(2024, 3, 20), day(2024, 3, 21))
	decided := existingRequest(employeeID, leaveTypeID, StatusApproved, day(2024, 3, 25), day(2024, 3, 25))

	repo := &fakeLeaveRepo{
		designation: uuid.New().String(),
		requests:    []LeaveRequest{pending, decided},
	}
	svc, _, mock, closeDB := newTestService(t, repo, nil)
	defer closeDB()

	edit := UpdateLeaveRequestRequest{
		LeaveTypeID: leaveTypeID.String(),
		StartDate:   "2024-03-26",
		EndDate:     "2024-03-26",
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Edit(context.Background(), pending.ID.String(), uuid.New().String(), edit)
	assert.ErrorIs(t, err, ErrNotOwner)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Edit(context.Background(), decided.ID.String(), employeeID.String(), edit)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DecideIsTerminal(t *testing.T) {
	employeeID := uuid.New()
	pending := existingRequest(employeeID, uuid.New(), StatusPending, day(2024, 3, 20), day(2024, 3, 21))

	repo := &fakeLeaveRepo{requests: []LeaveRequest{pending}}
	svc, outbox, mock, closeDB := newTestService(t, repo, nil)
	defer closeDB()

	approverID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Decide(context.Background(), pending.ID.String(), approverID, StatusApproved, false)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.LeaveStatus)
	assert.Equal(t, approverID, *resp.ApprovedBy)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "leave.decided", outbox.events[0].EventType)

	// Decisions are terminal; a second decision is rejected.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Decide(context.Background(), pending.ID.String(), approverID, StatusRejected, false)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Len(t, outbox.events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_TeamScopedDecideChecksDirectReport(t *testing.T) {
	employeeID := uuid.New()
	headID := uuid.New().String()
	pending := existingRequest(employeeID, uuid.New(), StatusPending, day(2024, 3, 20), day(2024, 3, 21))

	repo := &fakeLeaveRepo{
		requests: []LeaveRequest{pending},
		reports:  map[string]string{employeeID.String(): headID},
	}
	svc, _, mock, closeDB := newTestService(t, repo, nil)
	defer closeDB()

	// A stranger using the team entry point is refused.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(context.Background(), pending.ID.String(), uuid.New().String(), StatusApproved, true)
	assert.ErrorIs(t, err, ErrNotDirectReport)

	// The reporting head gets through.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Decide(context.Background(), pending.ID.String(), headID, StatusApproved, true)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.LeaveStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
