package face

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/nidhidattani13/ems/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// MatchThreshold is the maximum euclidean distance between a probe
// descriptor and an enrolled mean for a match.
const MatchThreshold = 0.6

const (
	faceMeansKey = "faces:means"
	faceCacheTTL = 10 * time.Minute
)

var ErrDescriptorLengthMismatch = apperror.New(
	apperror.CodeValidationError,
	"Descriptor length does not match the enrolled descriptors",
	http.StatusBadRequest,
)

// enrolledMean is the cached projection recognition works against.
type enrolledMean struct {
	EmployeeID string    `json:"employee_id"`
	Mean       []float64 `json:"mean"`
}

//go:generate mockgen -source=face_service.go -destination=mock/face_service_mock.go -package=mock
type Service interface {
	Enroll(ctx context.Context, employeeID string, req EnrollFaceRequest) (FaceProfileResponse, error)
	Recognize(ctx context.Context, req RecognizeFaceRequest) (RecognizeFaceResponse, error)
	List(ctx context.Context) ([]FaceProfileResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("face.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("face.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// Enroll appends the descriptor to the employee's profile (creating it
// on first enrollment) and recomputes the mean over all descriptors.
func (s *service) Enroll(ctx context.Context, employeeID string, req EnrollFaceRequest) (FaceProfileResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FaceProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var descriptors [][]float64
	profile, err := qtx.FindByEmployee(ctx, employeeID)
	switch {
	case err == nil:
		descriptors, err = profile.DecodedDescriptors()
		if err != nil {
			return FaceProfileResponse{}, err
		}
		if len(descriptors) > 0 && len(descriptors[0]) != len(req.Descriptor) {
			return FaceProfileResponse{}, ErrDescriptorLengthMismatch
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = &FaceProfile{
			ID:         uuid.New(),
			EmployeeID: uuid.MustParse(employeeID),
		}
	default:
		return FaceProfileResponse{}, err
	}

	descriptors = append(descriptors, req.Descriptor)

	encodedDescriptors, err := json.Marshal(descriptors)
	if err != nil {
		return FaceProfileResponse{}, err
	}
	encodedMean, err := json.Marshal(meanDescriptor(descriptors))
	if err != nil {
		return FaceProfileResponse{}, err
	}

	profile.Descriptors = string(encodedDescriptors)
	profile.Mean = string(encodedMean)

	if len(descriptors) == 1 {
		err = qtx.Create(ctx, profile)
	} else {
		err = qtx.Update(ctx, profile)
	}
	if err != nil {
		return FaceProfileResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return FaceProfileResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*profile, len(descriptors)), nil
}

func (s *service) Recognize(ctx context.Context, req RecognizeFaceRequest) (RecognizeFaceResponse, error) {
	means, err := s.loadMeans(ctx)
	if err != nil {
		return RecognizeFaceResponse{}, err
	}

	best := RecognizeFaceResponse{Distance: math.Inf(1)}
	for _, m := range means {
		if len(m.Mean) != len(req.Descriptor) {
			continue
		}
		d := euclidean(req.Descriptor, m.Mean)
		if d < best.Distance {
			best.Distance = d
			best.EmployeeID = m.EmployeeID
		}
	}

	if best.EmployeeID == "" || best.Distance >= MatchThreshold {
		return RecognizeFaceResponse{Matched: false}, nil
	}
	best.Matched = true
	return best, nil
}

func (s *service) List(ctx context.Context) ([]FaceProfileResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]FaceProfileResponse, len(rows))
	for i, p := range rows {
		descriptors, err := p.DecodedDescriptors()
		if err != nil {
			return nil, err
		}
		res[i] = mapToResponse(p, len(descriptors))
	}
	return res, nil
}

// loadMeans serves the enrolled means from redis, collapsing
// concurrent cache fills through singleflight.
func (s *service) loadMeans(ctx context.Context) ([]enrolledMean, error) {
	if cached, err := s.rdb.Get(ctx, faceMeansKey).Bytes(); err == nil {
		var means []enrolledMean
		if err := json.Unmarshal(cached, &means); err == nil {
			return means, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("face cache read failed", zap.Error(err))
	}

	v, err, _ := s.sf.Do(faceMeansKey, func() (any, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		means := make([]enrolledMean, 0, len(rows))
		for _, p := range rows {
			mean, err := p.DecodedMean()
			if err != nil {
				return nil, err
			}
			means = append(means, enrolledMean{EmployeeID: p.EmployeeID.String(), Mean: mean})
		}

		if encoded, err := json.Marshal(means); err == nil {
			if err := s.rdb.Set(ctx, faceMeansKey, encoded, faceCacheTTL).Err(); err != nil {
				s.logger.Warn("face cache write failed", zap.Error(err))
			}
		}
		return means, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]enrolledMean), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if err := s.rdb.Del(ctx, faceMeansKey).Err(); err != nil {
		s.logger.Warn("face cache invalidation failed", zap.Error(err))
	}
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func meanDescriptor(descriptors [][]float64) []float64 {
	if len(descriptors) == 0 {
		return nil
	}
	mean := make([]float64, len(descriptors[0]))
	for _, d := range descriptors {
		for i, v := range d {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(descriptors))
	}
	return mean
}

func mapToResponse(p FaceProfile, descriptorCount int) FaceProfileResponse {
	return FaceProfileResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		Descriptors: descriptorCount,
	}
}
