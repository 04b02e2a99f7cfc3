package leavepolicy

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/nidhidattani13/ems/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLeavePolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave policy not found",
		http.StatusNotFound,
	)
	ErrDuplicatePolicy = apperror.New(
		apperror.CodeConflict,
		"A policy for this designation and leave type already exists",
		http.StatusConflict,
	)
)

//go:generate mockgen -source=leavepolicy_service.go -destination=mock/leavepolicy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeavePolicyRequest) (LeavePolicyResponse, error)
	GetAll(ctx context.Context) ([]LeavePolicyResponse, error)
	GetByID(ctx context.Context, id string) (LeavePolicyResponse, error)
	Update(ctx context.Context, id string, req UpdateLeavePolicyRequest) (LeavePolicyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateLeavePolicyRequest) (LeavePolicyResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeavePolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByDesignationAndType(ctx, req.DesignationID, req.LeaveTypeID)
	if err == nil {
		return LeavePolicyResponse{}, ErrDuplicatePolicy
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeavePolicyResponse{}, err
	}

	p := &LeavePolicy{
		ID:            uuid.New(),
		DesignationID: uuid.MustParse(req.DesignationID),
		LeaveTypeID:   uuid.MustParse(req.LeaveTypeID),
		YearLimit:     req.YearLimit,
		MonthsLimit:   req.MonthsLimit,
		Status:        true,
	}

	if err := qtx.Create(ctx, p); err != nil {
		return LeavePolicyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeavePolicyResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeavePolicyResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeavePolicyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeavePolicyResponse{}, ErrLeavePolicyNotFound
		}
		return LeavePolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeavePolicyRequest) (LeavePolicyResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeavePolicyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeavePolicyResponse{}, ErrLeavePolicyNotFound
		}
		return LeavePolicyResponse{}, err
	}

	p.YearLimit = req.YearLimit
	p.MonthsLimit = req.MonthsLimit
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := qtx.Update(ctx, p); err != nil {
		return LeavePolicyResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeavePolicyResponse{}, err
	}

	return mapToResponse(*p), nil
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
			return ErrLeavePolicyNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(p LeavePolicy) LeavePolicyResponse {
	return LeavePolicyResponse{
		ID:            p.ID.String(),
		DesignationID: p.DesignationID.String(),
		LeaveTypeID:   p.LeaveTypeID.String(),
		YearLimit:     p.YearLimit,
		MonthsLimit:   p.MonthsLimit,
		Status:        p.Status,
	}
}

func mapToListResponse(rows []LeavePolicy) []LeavePolicyResponse {
	res := make([]LeavePolicyResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res
}
