package face

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FaceProfile holds one employee's enrolled descriptors plus their
// mean vector. Descriptors and Mean are JSON-encoded float slices;
// recognition only ever compares against Mean.
type FaceProfile struct {
	ID          uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID  uuid.UUID      `gorm:"column:employee_id;type:char(36);not null;uniqueIndex"`
	Descriptors string         `gorm:"column:descriptors;type:longtext;not null"`
	Mean        string         `gorm:"column:mean_descriptor;type:longtext;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (FaceProfile) TableName() string {
	return "face_profiles"
}

func (p *FaceProfile) DecodedDescriptors() ([][]float64, error) {
	var d [][]float64
	err := json.Unmarshal([]byte(p.Descriptors), &d)
	return d, err
}

func (p *FaceProfile) DecodedMean() ([]float64, error) {
	var m []float64
	err := json.Unmarshal([]byte(p.Mean), &m)
	return m, err
}
