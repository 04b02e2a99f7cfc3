package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, req *LeaveRequest) error
	Delete(ctx context.Context, id string) error

	ListAll(ctx context.Context) ([]LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListByReportingHead(ctx context.Context, headID string) ([]LeaveRequest, error)

	// ListSameTypeInMonth returns the employee's non-Rejected requests of
	// leaveTypeID whose start_date falls in [monthStart, monthEnd],
	// excluding excludeID when non-empty. Feeds the used-days sum.
	ListSameTypeInMonth(ctx context.Context, employeeID, leaveTypeID string, monthStart, monthEnd time.Time, excludeID string) ([]LeaveRequest, error)

	// HasApprovedFullDayCovering reports whether an approved, enabled,
	// non-half-day request of employeeID covers day.
	HasApprovedFullDayCovering(ctx context.Context, employeeID string, day time.Time) (bool, error)

	// FindEmployeeDesignation resolves the employee's designation_id for
	// the policy lookup.
	FindEmployeeDesignation(ctx context.Context, employeeID string) (string, error)

	// IsDirectReport reports whether employeeID's reporting head is headID.
	IsDirectReport(ctx context.Context, employeeID, headID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}

func (r *repository) ListAll(ctx context.Context) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByReportingHead(ctx context.Context, headID string) ([]LeaveRequest, error) {
	var rows []LeaveRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("employees.reporting_head_id = ?", headID).
		Order("leave_requests.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListSameTypeInMonth(ctx context.Context, employeeID, leaveTypeID string, monthStart, monthEnd time.Time, excludeID string) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("leave_status <> ?", StatusRejected).
		Where("start_date BETWEEN ? AND ?", monthStart, monthEnd)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var rows []LeaveRequest
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) HasApprovedFullDayCovering(ctx context.Context, employeeID string, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("leave_status = ?", StatusApproved).
		Where("is_half_day = ?", false).
		Where("status = ?", true).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindEmployeeDesignation(ctx context.Context, employeeID string) (string, error) {
	var designationID string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("designation_id").
		Where("id = ?", employeeID).
		Take(&designationID).Error
	return designationID, err
}

func (r *repository) IsDirectReport(ctx context.Context, employeeID, headID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("reporting_head_id = ?", headID).
		Count(&count).Error
	return count > 0, err
}
