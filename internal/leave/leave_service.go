package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/nidhidattani13/ems/internal/events"
	"github.com/nidhidattani13/ems/internal/messaging/kafka"
	"github.com/nidhidattani13/ems/internal/shared/clock"
	"github.com/nidhidattani13/ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	Edit(ctx context.Context, id, employeeID string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, id, approverID, decision string, teamScoped bool) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListAll(ctx context.Context) ([]LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListTeam(ctx context.Context, headID string) ([]LeaveRequestResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger *Ledger
	outbox kafka.OutboxRepository
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledger *Ledger, outbox kafka.OutboxRepository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, outbox: outbox, clk: clk, logger: l}
}

// parseSpan validates the submitted dates in order: parse, not
// backdated, end >= start, single calendar month. First failure wins.
func (s *service) parseSpan(startDate, endDate string, isHalfDay bool, session *string) (Span, error) {
	start, err := time.Parse(clock.DateLayout, startDate)
	if err != nil {
		return Span{}, ErrInvalidDate
	}
	end, err := time.Parse(clock.DateLayout, endDate)
	if err != nil {
		return Span{}, ErrInvalidDate
	}

	if isHalfDay && session == nil {
		return Span{}, ErrHalfDaySessionRequired
	}

	today := clock.DayOf(s.clk.Now())
	if start.Before(today) || end.Before(today) {
		return Span{}, ErrBackdatedLeave
	}
	if end.Before(start) {
		return Span{}, ErrEndBeforeStart
	}
	if !clock.SameMonth(start, end) {
		return Span{}, ErrCrossMonth
	}

	span := Span{Start: start, End: end, HalfDay: isHalfDay}
	if session != nil {
		span.Session = *session
	}
	return span, nil
}

func (s *service) Submit(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	span, err := s.parseSpan(req.StartDate, req.EndDate, req.IsHalfDay, req.HalfDaySession)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.ledger.CheckEligibility(ctx, employeeID, req.LeaveTypeID, span, ""); err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	lr := &LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		LeaveTypeID:    uuid.MustParse(req.LeaveTypeID),
		StartDate:      span.Start,
		EndDate:        span.End,
		IsHalfDay:      req.IsHalfDay,
		HalfDaySession: req.HalfDaySession,
		Reason:         req.Reason,
		LeaveStatus:    StatusPending,
		Status:         true,
	}

	if err := s.repo.WithTx(tx).Create(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("leave request submitted",
		zap.String("leave_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("days", span.Days()),
	)
	return mapToResponse(*lr), nil
}

func (s *service) Edit(ctx context.Context, id, employeeID string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error) {
	span, err := s.parseSpan(req.StartDate, req.EndDate, req.IsHalfDay, req.HalfDaySession)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if lr.EmployeeID.String() != employeeID {
		return LeaveRequestResponse{}, ErrNotOwner
	}
	if lr.Decided() {
		return LeaveRequestResponse{}, ErrAlreadyDecided
	}

	// Re-run the balance check against the edited fields, with the
	// record itself excluded from the used-days sum.
	if err := s.ledger.CheckEligibility(ctx, employeeID, req.LeaveTypeID, span, id); err != nil {
		return LeaveRequestResponse{}, err
	}

	lr.LeaveTypeID = uuid.MustParse(req.LeaveTypeID)
	lr.StartDate = span.Start
	lr.EndDate = span.End
	lr.IsHalfDay = req.IsHalfDay
	lr.HalfDaySession = req.HalfDaySession
	lr.Reason = req.Reason

	if err := qtx.Update(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

func (s *service) Decide(ctx context.Context, id, approverID, decision string, teamScoped bool) (LeaveRequestResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if lr.Decided() {
		return LeaveRequestResponse{}, ErrAlreadyDecided
	}

	if teamScoped {
		isReport, err := qtx.IsDirectReport(ctx, lr.EmployeeID.String(), approverID)
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		if !isReport {
			return LeaveRequestResponse{}, ErrNotDirectReport
		}
	}

	approver := uuid.MustParse(approverID)
	lr.LeaveStatus = decision
	lr.ApprovedBy = &approver

	if err := qtx.Update(ctx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueDecidedEvent(ctx, tx, lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("leave request decided",
		zap.String("leave_id", lr.ID.String()),
		zap.String("decision", decision),
		zap.String("decided_by", approverID),
	)
	return mapToResponse(*lr), nil
}

// enqueueDecidedEvent records the decision in the outbox within the
// same transaction so the notification is never lost or duplicated.
func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, lr *LeaveRequest) error {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:   "leave.decided",
		LeaveID:     lr.ID.String(),
		EmployeeID:  lr.EmployeeID.String(),
		LeaveTypeID: lr.LeaveTypeID.String(),
		Decision:    lr.LeaveStatus,
		DecidedBy:   lr.ApprovedBy.String(),
		StartDate:   lr.StartDate.Format(clock.DateLayout),
		EndDate:     lr.EndDate.Format(clock.DateLayout),
		OccurredAt:  s.clk.Now(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     "leave.decided",
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*lr), nil
}

func (s *service) ListAll(ctx context.Context) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListTeam(ctx context.Context, headID string) ([]LeaveRequestResponse, error) {
	rows, err := s.repo.ListByReportingHead(ctx, headID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
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
			return ErrLeaveRequestNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             lr.ID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		LeaveTypeID:    lr.LeaveTypeID.String(),
		StartDate:      lr.StartDate.Format(clock.DateLayout),
		EndDate:        lr.EndDate.Format(clock.DateLayout),
		IsHalfDay:      lr.IsHalfDay,
		HalfDaySession: lr.HalfDaySession,
		Reason:         lr.Reason,
		LeaveStatus:    lr.LeaveStatus,
		Status:         lr.Status,
	}
	if lr.ApprovedBy != nil {
		id := lr.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	return resp
}

func mapToListResponse(rows []LeaveRequest) []LeaveRequestResponse {
	res := make([]LeaveRequestResponse, len(rows))
	for i, lr := range rows {
		res[i] = mapToResponse(lr)
	}
	return res
}
