package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee doubles as the login account: Email is the credential
// identity and Role feeds the authorization layer.
type Employee struct {
	ID              uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	Name            string         `gorm:"column:name;type:varchar(255);not null"`
	Email           string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password        string         `gorm:"column:password;type:varchar(255);not null"`
	DepartmentID    *uuid.UUID     `gorm:"column:department_id;type:char(36);index"`
	DesignationID   *uuid.UUID     `gorm:"column:designation_id;type:char(36);index"`
	ReportingHeadID *uuid.UUID     `gorm:"column:reporting_head_id;type:char(36);index"`
	Role            string         `gorm:"column:role;type:varchar(32);not null;default:'employee'"`
	Status          bool           `gorm:"column:status;not null;default:true"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
