package entities

import (
	"github.com/google/uuid"
)

type FoodCategory string

const (
	CategoryWetFood FoodCategory = "wet_food"
	CategoryDryFood FoodCategory = "dry_food"
	CategorySnack   FoodCategory = "snack"
	CategorySupp    FoodCategory = "supp"
	CategoryMed     FoodCategory = "med"
	CategoryOther   FoodCategory = "other"
)

// IsFood reports whether the category counts as eaten food mass.
// Supplements and medications carry nutrients but not bowl mass.
func (c FoodCategory) IsFood() bool {
	return c != CategorySupp && c != CategoryMed
}

// IsMealFood reports whether the category may contribute to a meal's
// blended density.
func (c FoodCategory) IsMealFood() bool {
	switch c {
	case CategoryWetFood, CategoryDryFood, CategorySnack, CategoryOther:
		return true
	}
	return false
}

func (c FoodCategory) Valid() bool {
	switch c {
	case CategoryWetFood, CategoryDryFood, CategorySnack, CategorySupp, CategoryMed, CategoryOther:
		return true
	}
	return false
}

type UnitType string

const (
	UnitGram       UnitType = "g"
	UnitPiece      UnitType = "piece"
	UnitMilliliter UnitType = "ml"
)

// FoodItem is one row of the shared food library. Nutrient values are
// expressed per 100 units for grams and per single unit otherwise.
type FoodItem struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string       `gorm:"index;not null" json:"name"`
	Brand           string       `json:"brand"`
	Category        FoodCategory `gorm:"type:varchar(20);index;not null" json:"category"`
	CaloriesPer100g float64      `gorm:"column:calories_100g" json:"calories_100g"`
	UnitType        UnitType     `gorm:"type:varchar(10);default:'g'" json:"unit_type"`
	ProteinPct      float64      `json:"protein_pct"`
	FatPct          float64      `json:"fat_pct"`
	PhosPct         float64      `json:"phos_pct"`
	FiberPct        float64      `json:"fiber_pct"`
	AshPct          float64      `json:"ash_pct"`
	MoisturePct     float64      `json:"moisture_pct"`
	LabelWeight     float64      `json:"label_weight"`
	LabelCal        float64      `json:"label_cal"`

	Timestamp
}

func (FoodItem) TableName() string {
	return "food_library"
}

type PetFoodRelation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	PetID    uuid.UUID `gorm:"type:uuid;index;not null" json:"pet_id"`
	FoodID   uuid.UUID `gorm:"type:uuid;index;not null" json:"food_id"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	Pet  *Pet      `gorm:"foreignKey:PetID"`
	Food *FoodItem `gorm:"foreignKey:FoodID"`
	Timestamp
}
