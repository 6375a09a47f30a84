package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Pet struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	BirthDate      *time.Time     `gorm:"type:date" json:"birth_date,omitempty"`
	Gender         string         `json:"gender"`
	Breed          string         `json:"breed"`
	Weight         float64        `json:"weight"` // kg
	HealthTags     datatypes.JSON `json:"health_tags"`
	HealthDesc     string         `json:"health_desc"`
	ImageURL       string         `json:"image_url,omitempty"`
	IsDeleted      bool           `gorm:"default:false;index" json:"is_deleted"`
	DeletionReason string         `json:"deletion_reason,omitempty"`

	Timestamp
}
