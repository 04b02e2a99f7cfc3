package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nidhidattani13/ems/internal/shared/apperror"
	"github.com/nidhidattani13/ems/internal/shared/clock"
	"github.com/nidhidattani13/ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaveChecker is the attendance-facing slice of the leave ledger:
// sign-in is gated on approved full-day leave covering today.
type LeaveChecker interface {
	OnApprovedFullDayLeave(ctx context.Context, employeeID string, day time.Time) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	SignIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	SignOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error)
	Mark(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	ListAll(ctx context.Context, month, year int) ([]AttendanceResponse, error)

	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error

	// CloseDay stamps 18:00 on every open record of the current day.
	CloseDay(ctx context.Context) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	leaves LeaveChecker
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, leaves LeaveChecker, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, leaves: leaves, clk: clk, logger: l}
}

func (s *service) SignIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	now := s.clk.Now()
	today := clock.DayOf(now)
	cutoff := clock.WorkdayEnd(now)

	onLeave, err := s.leaves.OnApprovedFullDayLeave(ctx, employeeID, today)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if onLeave {
		return AttendanceResponse{}, ErrOnApprovedLeave
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	switch {
	case err == nil:
		if rec.SignInTime == nil {
			// An admin-created record without times picks up its
			// sign-in on first use.
			rec.SignInTime = &now
			if !now.Before(cutoff) {
				rec.SignOutTime = &cutoff
			}
			if err := qtx.Update(ctx, rec); err != nil {
				return AttendanceResponse{}, err
			}
		} else {
			// Re-entry is idempotent: return the existing record,
			// opportunistically closing it if 18:00 has passed.
			if rec, err = s.healStale(ctx, qtx, rec, now, cutoff); err != nil {
				return AttendanceResponse{}, err
			}
		}
		if err := tx.Commit(); err != nil {
			return AttendanceResponse{}, err
		}
		return mapToResponse(*rec), nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		// No record yet, fall through to the insert.

	default:
		return AttendanceResponse{}, err
	}

	rec = &AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Date:       today,
		SignInTime: &now,
		Status:     true,
	}
	// A sign-in at or after 18:00 is recorded already closed at 18:00.
	if !now.Before(cutoff) {
		rec.SignOutTime = &cutoff
	}

	if err := qtx.Create(ctx, rec); err != nil {
		if isDuplicateEntry(err) {
			// Lost the unique-index race; the winner's row is the record.
			winner, rerr := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
			if rerr != nil {
				return AttendanceResponse{}, rerr
			}
			return mapToResponse(*winner), nil
		}
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee signed in",
		zap.String("employee_id", employeeID),
		zap.Time("at", now),
	)
	return mapToResponse(*rec), nil
}

func (s *service) SignOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	now := s.clk.Now()
	today := clock.DayOf(now)
	cutoff := clock.WorkdayEnd(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, ErrNotSignedIn
		}
		return AttendanceResponse{}, err
	}
	if rec.SignInTime == nil {
		return AttendanceResponse{}, ErrNotSignedIn
	}

	// Already signed out: no-op, sign-out never moves again.
	if rec.SignOutTime != nil {
		if err := tx.Commit(); err != nil {
			return AttendanceResponse{}, err
		}
		return mapToResponse(*rec), nil
	}

	out := now
	if out.After(cutoff) {
		out = cutoff
	}
	rec.SignOutTime = &out

	if err := qtx.Update(ctx, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*rec), nil
}

// GetToday is a self-healing read: an open record observed at or after
// 18:00 is closed at 18:00 before being returned.
func (s *service) GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	now := s.clk.Now()
	today := clock.DayOf(now)
	cutoff := clock.WorkdayEnd(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	healed, err := s.healStale(ctx, qtx, rec, now, cutoff)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*healed), nil
}

// healStale closes an open record at 18:00 once the cutoff has passed.
func (s *service) healStale(ctx context.Context, repo Repository, rec *AttendanceRecord, now, cutoff time.Time) (*AttendanceRecord, error) {
	if !rec.Open() || now.Before(cutoff) {
		return rec, nil
	}
	rec.SignOutTime = &cutoff
	if err := repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Mark records presence for today: an existing record is returned as
// is, otherwise one is created with sign-in stamped now. Idempotent.
func (s *service) Mark(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	now := s.clk.Now()
	today := clock.DayOf(now)
	cutoff := clock.WorkdayEnd(now)

	rec, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return mapToResponse(*rec), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	rec = &AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Date:       today,
		SignInTime: &now,
		Status:     true,
	}
	if !now.Before(cutoff) {
		rec.SignOutTime = &cutoff
	}
	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		if isDuplicateEntry(err) {
			winner, rerr := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
			if rerr != nil {
				return AttendanceResponse{}, rerr
			}
			return mapToResponse(*winner), nil
		}
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListAll(ctx context.Context, month, year int) ([]AttendanceResponse, error) {
	from, to := clock.MonthBounds(year, time.Month(month), time.UTC)
	rows, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	date, err := time.Parse(clock.DateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("date")
	}
	signIn, err := parseOptionalTime(req.SignInTime, "sign_in_time")
	if err != nil {
		return AttendanceResponse{}, err
	}
	signOut, err := parseOptionalTime(req.SignOutTime, "sign_out_time")
	if err != nil {
		return AttendanceResponse{}, err
	}
	if outOfOrder(signIn, signOut) {
		return AttendanceResponse{}, ErrSignOutBeforeSignIn
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	rec := &AttendanceRecord{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		Date:        date,
		SignInTime:  signIn,
		SignOutTime: signOut,
		Status:      true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		if isDuplicateEntry(err) {
			return AttendanceResponse{}, ErrDuplicateRecord
		}
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	signIn, err := parseOptionalTime(req.SignInTime, "sign_in_time")
	if err != nil {
		return AttendanceResponse{}, err
	}
	signOut, err := parseOptionalTime(req.SignOutTime, "sign_out_time")
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	if signIn != nil {
		rec.SignInTime = signIn
	}
	if signOut != nil {
		rec.SignOutTime = signOut
	}
	if req.Status != nil {
		rec.Status = *req.Status
	}
	if outOfOrder(rec.SignInTime, rec.SignOutTime) {
		return AttendanceResponse{}, ErrSignOutBeforeSignIn
	}

	if err := qtx.Update(ctx, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) CloseDay(ctx context.Context) (int64, error) {
	now := s.clk.Now()
	closed, err := s.repo.CloseOpenForDay(ctx, clock.DayOf(now), clock.WorkdayEnd(now))
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		s.logger.Info("auto-closed open attendance records",
			zap.Int64("count", closed),
			zap.Time("cutoff", clock.WorkdayEnd(now)),
		)
	}
	return closed, nil
}

func outOfOrder(signIn, signOut *time.Time) bool {
	return signIn != nil && signOut != nil && signOut.Before(*signIn)
}

func parseOptionalTime(value *string, field string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &t, nil
}

func mapToResponse(rec AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         rec.ID.String(),
		EmployeeID: rec.EmployeeID.String(),
		Date:       rec.Date.Format(clock.DateLayout),
		Status:     rec.Status,
	}
	if rec.SignInTime != nil {
		v := rec.SignInTime.Format(time.RFC3339)
		resp.SignInTime = &v
	}
	if rec.SignOutTime != nil {
		v := rec.SignOutTime.Format(time.RFC3339)
		resp.SignOutTime = &v
	}
	return resp
}

func mapToListResponse(rows []AttendanceRecord) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, rec := range rows {
		res[i] = mapToResponse(rec)
	}
	return res
}
