package document

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
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	// ErrNotDocumentOwner covers both the wrong-employee path segment
	// and a non-admin touching someone else's files.
	ErrNotDocumentOwner = apperror.New(
		apperror.CodeForbidden,
		"You can only access your own documents",
		http.StatusForbidden,
	)
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, employeeID string, req UploadDocumentRequest) (DocumentResponse, error)
	List(ctx context.Context, employeeID string) ([]DocumentMeta, error)
	Get(ctx context.Context, employeeID, docID string) (DocumentResponse, error)
	Update(ctx context.Context, employeeID, docID string, req UpdateDocumentRequest) (DocumentResponse, error)
	Delete(ctx context.Context, employeeID, docID string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Upload(ctx context.Context, employeeID string, req UploadDocumentRequest) (DocumentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	d := &Document{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		FileName:   req.FileName,
		FileType:   req.FileType,
		Content:    req.Content,
	}
	if err := s.repo.WithTx(tx).Create(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) List(ctx context.Context, employeeID string) ([]DocumentMeta, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]DocumentMeta, len(rows))
	for i, d := range rows {
		res[i] = mapToMeta(d)
	}
	return res, nil
}

func (s *service) Get(ctx context.Context, employeeID, docID string) (DocumentResponse, error) {
	d, err := s.findOwned(ctx, s.repo, employeeID, docID)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, employeeID, docID string, req UpdateDocumentRequest) (DocumentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := s.findOwned(ctx, qtx, employeeID, docID)
	if err != nil {
		return DocumentResponse{}, err
	}

	d.FileName = req.FileName
	d.FileType = req.FileType
	if req.Content != "" {
		d.Content = req.Content
	}

	if err := qtx.Update(ctx, d); err != nil {
		return DocumentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, employeeID, docID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := s.findOwned(ctx, qtx, employeeID, docID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, docID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) findOwned(ctx context.Context, repo Repository, employeeID, docID string) (*Document, error) {
	d, err := repo.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if d.EmployeeID.String() != employeeID {
		return nil, ErrNotDocumentOwner
	}
	return d, nil
}

func mapToMeta(d Document) DocumentMeta {
	return DocumentMeta{
		ID:         d.ID.String(),
		EmployeeID: d.EmployeeID.String(),
		FileName:   d.FileName,
		FileType:   d.FileType,
	}
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		DocumentMeta: mapToMeta(d),
		Content:      d.Content,
	}
}
