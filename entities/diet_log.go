package entities

import (
	"time"

	"github.com/google/uuid"
)

type LogType string

const (
	LogTypeIntake LogType = "intake"
	LogTypeWaste  LogType = "waste"
)

// DietLog is a single signed ledger line. Rows are only ever inserted.
type DietLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	PetID     uuid.UUID `gorm:"type:uuid;index:idx_diet_logs_pet_time;not null" json:"pet_id"`
	LoggedAt  time.Time `gorm:"column:timestamp;type:timestamp with time zone;index:idx_diet_logs_pet_time;not null" json:"timestamp"`
	DateStr   string    `gorm:"type:varchar(10);index;not null" json:"date_str"`
	MealName  string    `gorm:"not null" json:"meal_name"`
	FoodName  string    `gorm:"index;not null" json:"food_name"`
	NetWeight float64   `json:"net_weight"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Fat       float64   `json:"fat"`
	Phos      float64   `json:"phos"`
	LogType   LogType   `gorm:"type:varchar(10);index;not null" json:"log_type"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
}
