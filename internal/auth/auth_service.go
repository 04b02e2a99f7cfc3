package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/nidhidattani13/ems/internal/employee"
	"github.com/nidhidattani13/ems/internal/shared/apperror"
	"github.com/nidhidattani13/ems/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = apperror.New(
	apperror.CodeUnauthorized,
	"Invalid email or password",
	http.StatusUnauthorized,
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (MeResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, userID string) (MeResponse, error)
}

type service struct {
	employees employee.Service
	repo      employee.Repository
	logger    *zap.Logger
}

// NewService wires registration through the employee service so new
// accounts get the same lifecycle treatment (hashing, outbox event) as
// admin-created ones; login reads the employee table directly.
func NewService(employees employee.Service, repo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employees, repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (MeResponse, error) {
	created, err := s.employees.Create(ctx, employee.CreateEmployeeRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return MeResponse{}, err
	}

	return MeResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Role:  created.Role,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	e, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    e.ID.String(),
		"role":  e.Role,
		"email": e.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return LoginResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee logged in",
		zap.String("employee_id", e.ID.String()),
	)
	return LoginResponse{
		Token: signed,
		Employee: MeResponse{
			ID:    e.ID.String(),
			Name:  e.Name,
			Email: e.Email,
			Role:  e.Role,
		},
	}, nil
}

func (s *service) Me(ctx context.Context, userID string) (MeResponse, error) {
	e, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, apperror.ErrUnauthorized
		}
		return MeResponse{}, err
	}
	return MeResponse{
		ID:    e.ID.String(),
		Name:  e.Name,
		Email: e.Email,
		Role:  e.Role,
	}, nil
}
