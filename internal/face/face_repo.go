package face

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=face_repo.go -destination=mock/face_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *FaceProfile) error
	FindByEmployee(ctx context.Context, employeeID string) (*FaceProfile, error)
	FindAll(ctx context.Context) ([]FaceProfile, error)
	Update(ctx context.Context, p *FaceProfile) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *FaceProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*FaceProfile, error) {
	var p FaceProfile
	err := r.db.WithContext(ctx).First(&p, "employee_id = ?", employeeID).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]FaceProfile, error) {
	var rows []FaceProfile
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *FaceProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
