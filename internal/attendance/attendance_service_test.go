package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nidhidattani13/ems/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, rec *AttendanceRecord) error
	findByIDFn              func(ctx context.Context, id string) (*AttendanceRecord, error)
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)
	updateFn                func(ctx context.Context, rec *AttendanceRecord) error
	deleteFn                func(ctx context.Context, id string) error
	listByEmployeeFn        func(ctx context.Context, employeeID string) ([]AttendanceRecord, error)
	listByDateRangeFn       func(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error)
	closeOpenForDayFn       func(ctx context.Context, day, cutoff time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, rec *AttendanceRecord) error {
	return f.createFn(ctx, rec)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*AttendanceRecord, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) Update(ctx context.Context, rec *AttendanceRecord) error {
	return f.updateFn(ctx, rec)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	return f.listByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
	return f.listByDateRangeFn(ctx, from, to)
}
func (f *fakeRepo) CloseOpenForDay(ctx context.Context, day, cutoff time.Time) (int64, error) {
	return f.closeOpenForDayFn(ctx, day, cutoff)
}

type fakeLeaveChecker struct {
	onLeave bool
	err     error
}

func (f *fakeLeaveChecker) OnApprovedFullDayLeave(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	return f.onLeave, f.err
}

func storeBackedRepo(store *map[string]AttendanceRecord) *fakeRepo {
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, rec *AttendanceRecord) error {
		(*store)[rec.EmployeeID.String()] = *rec
		return nil
	}
	repo.updateFn = func(ctx context.Context, rec *AttendanceRecord) error {
		(*store)[rec.EmployeeID.String()] = *rec
		return nil
	}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error) {
		rec, ok := (*store)[employeeID]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return &rec, nil
	}
	return repo
}

func TestService_SignInBeforeCutoffLeavesRecordOpen(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{}
	repo := storeBackedRepo(&store)
	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.Fixed(now))

	employeeID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SignIn(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.NotNil(t, resp.SignInTime)
	assert.Nil(t, resp.SignOutTime)
	assert.Equal(t, "2024-03-15", resp.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SignInAfterCutoffClosesAtExactly1800(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Date(2024, 3, 15, 18, 42, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{}
	repo := storeBackedRepo(&store)
	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.Fixed(now))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SignIn(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.SignOutTime)
	assert.Equal(t, "2024-03-15T18:00:00Z", *resp.SignOutTime)
}

func TestService_SignInIsIdempotent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{}
	repo := storeBackedRepo(&store)
	creates := 0
	inner := repo.createFn
	repo.createFn = func(ctx context.Context, rec *AttendanceRecord) error {
		creates++
		return inner(ctx, rec)
	}
	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.Fixed(now))

	employeeID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.SignIn(context.Background(), employeeID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.SignIn(context.Background(), employeeID)
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.SignInTime, second.SignInTime)
	assert.Equal(t, 1, creates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SignInBlockedByApprovedFullDayLeave(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{}
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{onLeave: true}, clock.Fixed(now))

	_, err := svc.SignIn(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrOnApprovedLeave)
	assert.Empty(t, store)
}

func TestService_SignOutIsCappedAndMonotonic(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	signIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{
		employeeID.String(): {
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			SignInTime: &signIn,
			Status:     true,
		},
	}
	repo := storeBackedRepo(&store)

	// Sign-out after the cutoff is recorded at 18:00, not at "now".
	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.Fixed(time.Date(2024, 3, 15, 19, 30, 0, 0, time.UTC)))
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SignOut(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-15T18:00:00Z", *resp.SignOutTime)

	// A second sign-out never moves the timestamp.
	mock.ExpectBegin()
	mock.ExpectCommit()
	again, err := svc.SignOut(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, *resp.SignOutTime, *again.SignOutTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SignOutWithoutSignIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	store := map[string]AttendanceRecord{}
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{},
		clock.Fixed(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.SignOut(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetTodayHealsStaleOpenRecord(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	signIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{
		employeeID.String(): {
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			SignInTime: &signIn,
			Status:     true,
		},
	}
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{},
		clock.Fixed(time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.GetToday(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.SignOutTime)
	assert.Equal(t, "2024-03-15T18:00:00Z", *resp.SignOutTime)

	// The heal is persisted, not just reflected in the response.
	stored := store[employeeID.String()]
	assert.NotNil(t, stored.SignOutTime)
}

func TestService_SignInDuplicateRaceReturnsWinner(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	winner := AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:     true,
	}

	calls := 0
	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, date time.Time) (*AttendanceRecord, error) {
		calls++
		if calls == 1 {
			// First read inside the tx sees nothing; the concurrent
			// sign-in lands between the read and the insert.
			return nil, gorm.ErrRecordNotFound
		}
		return &winner, nil
	}
	repo.createFn = func(ctx context.Context, rec *AttendanceRecord) error {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}

	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.Fixed(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))

	mock.ExpectBegin()
	mock.ExpectRollback()
	resp, err := svc.SignIn(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, winner.ID.String(), resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SignInAdoptsBareRecord(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	// Admin created the row without times; the employee's sign-in must
	// still land on it.
	employeeID := uuid.New()
	store := map[string]AttendanceRecord{
		employeeID.String(): {
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:     true,
		},
	}
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{}, clock.Fixed(now))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SignIn(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.SignInTime)
	assert.Equal(t, "2024-03-15T09:30:00Z", *resp.SignInTime)
	assert.Nil(t, resp.SignOutTime)

	stored := store[employeeID.String()]
	assert.NotNil(t, stored.SignInTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SignInAdoptsBareRecordAfterCutoff(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	store := map[string]AttendanceRecord{
		employeeID.String(): {
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:     true,
		},
	}
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{},
		clock.Fixed(time.Date(2024, 3, 15, 18, 42, 0, 0, time.UTC)))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.SignIn(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.SignInTime)
	assert.NotNil(t, resp.SignOutTime)
	assert.Equal(t, "2024-03-15T18:00:00Z", *resp.SignOutTime)
}

func TestService_MarkStampsSignIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	store := map[string]AttendanceRecord{}
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{}, clock.Fixed(now))

	employeeID := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	marked, err := svc.Mark(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.NotNil(t, marked.SignInTime)
	assert.Equal(t, "2024-03-15T09:00:00Z", *marked.SignInTime)
	assert.Nil(t, marked.SignOutTime)

	// A sign-in after mark reuses the record and keeps its timestamp.
	mock.ExpectBegin()
	mock.ExpectCommit()
	signedIn, err := svc.SignIn(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.Equal(t, marked.ID, signedIn.ID)
	assert.Equal(t, *marked.SignInTime, *signedIn.SignInTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_MarkAfterCutoffClosesAt1800(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	store := map[string]AttendanceRecord{}
	svc := NewService(db, storeBackedRepo(&store), &fakeLeaveChecker{},
		clock.Fixed(time.Date(2024, 3, 15, 19, 15, 0, 0, time.UTC)))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Mark(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.SignOutTime)
	assert.Equal(t, "2024-03-15T18:00:00Z", *resp.SignOutTime)
}

func TestService_CreateRejectsOutOfOrderTimes(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeLeaveChecker{}, clock.New())

	signIn := "2024-03-15T10:00:00Z"
	signOut := "2024-03-15T09:00:00Z"
	_, err := svc.Create(context.Background(), CreateAttendanceRequest{
		EmployeeID:  uuid.New().String(),
		Date:        "2024-03-15",
		SignInTime:  &signIn,
		SignOutTime: &signOut,
	})
	assert.ErrorIs(t, err, ErrSignOutBeforeSignIn)
}

func TestService_UpdateRejectsOutOfOrderTimes(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	signIn := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	existing := AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		SignInTime: &signIn,
		Status:     true,
	}
	updates := 0
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*AttendanceRecord, error) {
		return &existing, nil
	}
	repo.updateFn = func(ctx context.Context, rec *AttendanceRecord) error {
		updates++
		return nil
	}
	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.New())

	signOut := "2024-03-15T09:00:00Z"
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), existing.ID.String(), UpdateAttendanceRequest{
		SignOutTime: &signOut,
	})
	assert.ErrorIs(t, err, ErrSignOutBeforeSignIn)
	assert.Equal(t, 0, updates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CloseDayDelegatesCutoff(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var gotDay, gotCutoff time.Time
	repo := &fakeRepo{}
	repo.closeOpenForDayFn = func(ctx context.Context, day, cutoff time.Time) (int64, error) {
		gotDay, gotCutoff = day, cutoff
		return 3, nil
	}

	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.Fixed(time.Date(2024, 3, 15, 18, 5, 0, 0, time.UTC)))

	closed, err := svc.CloseDay(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 3, closed)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), gotDay)
	assert.Equal(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC), gotCutoff)
}

func TestService_ListAllUsesInclusiveMonthBounds(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var gotFrom, gotTo time.Time
	repo := &fakeRepo{}
	repo.listByDateRangeFn = func(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
		gotFrom, gotTo = from, to
		return nil, nil
	}

	svc := NewService(db, repo, &fakeLeaveChecker{}, clock.New())

	_, err := svc.ListAll(context.Background(), 2, 2024)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), gotTo)
}
