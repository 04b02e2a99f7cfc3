package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	FindByID(ctx context.Context, id string) (*AttendanceRecord, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)
	Update(ctx context.Context, rec *AttendanceRecord) error
	Delete(ctx context.Context, id string) error

	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceRecord, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error)

	// CloseOpenForDay stamps cutoff as the sign-out of every record on
	// day that has a sign-in and no sign-out. Returns rows affected.
	// Idempotent; both the timer and the ticker of the auto-closer call it.
	CloseOpenForDay(ctx context.Context, day, cutoff time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date).
		First(&rec).Error
	return &rec, err
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&AttendanceRecord{}, "id = ?", id).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CloseOpenForDay(ctx context.Context, day, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("date = ?", day).
		Where("sign_in_time IS NOT NULL").
		Where("sign_out_time IS NULL").
		Update("sign_out_time", cutoff)
	return res.RowsAffected, res.Error
}
