package designation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nidhidattani13/ems/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const designationAllKey = "designations:all"

var ErrDesignationNotFound = apperror.New(
	apperror.CodeNotFound,
	"Designation not found",
	http.StatusNotFound,
)

//go:generate mockgen -source=designation_service.go -destination=mock/designation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context) ([]DesignationResponse, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
	Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("designation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("designation.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	desig := &Designation{
		ID:           uuid.New(),
		Title:        req.Title,
		DepartmentID: uuid.MustParse(req.DepartmentID),
		Status:       true,
	}

	if err := qtx.Create(ctx, desig); err != nil {
		return DesignationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*desig), nil
}

// GetAll serves from redis when possible; cache misses collapse into a
// single DB read via singleflight.
func (s *service) GetAll(ctx context.Context) ([]DesignationResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, designationAllKey).Result()
		if err == nil {
			var resp []DesignationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(designationAllKey, func() (any, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				if err := s.rdb.Set(ctx, designationAllKey, payload, 10*time.Minute).Err(); err != nil {
					s.logger.Warn("cache designations failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]DesignationResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	desig, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, ErrDesignationNotFound
		}
		return DesignationResponse{}, err
	}
	return mapToResponse(*desig), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	desig, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DesignationResponse{}, ErrDesignationNotFound
		}
		return DesignationResponse{}, err
	}

	desig.Title = req.Title
	desig.DepartmentID = uuid.MustParse(req.DepartmentID)
	if req.Status != nil {
		desig.Status = *req.Status
	}

	if err := qtx.Update(ctx, desig); err != nil {
		return DesignationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*desig), nil
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
			return ErrDesignationNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, designationAllKey).Err(); err != nil {
		s.logger.Warn("invalidate designation cache failed", zap.Error(err))
	}
}

func mapToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:           d.ID.String(),
		Title:        d.Title,
		DepartmentID: d.DepartmentID.String(),
		Status:       d.Status,
	}
}

func mapToListResponse(rows []Designation) []DesignationResponse {
	res := make([]DesignationResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res
}
