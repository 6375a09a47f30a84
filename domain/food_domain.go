package domain

import (
	"PetDiary/entities"
	"errors"
)

var (
	MessageSuccessAddFood  = "food added successfully"
	MessageSuccessGetFoods = "foods retrieved successfully"
	MessageSuccessGetMenu  = "menu retrieved successfully"
	MessageSuccessSyncMenu = "menu updated successfully"

	MessageFailedAddFood  = "failed to add food"
	MessageFailedGetFoods = "failed to retrieve foods"
	MessageFailedGetMenu  = "failed to retrieve menu"
	MessageFailedSyncMenu = "failed to update menu"

	ErrFoodNotFound      = errors.New("food not found")
	ErrFoodNameRequired  = errors.New("food name is required")
	ErrInvalidCalories   = errors.New("calories per 100g must be positive")
	ErrInvalidCategory   = errors.New("invalid food category")
	ErrFoodNotInCategory = errors.New("selected food does not belong to the category")
)

const (
	CalorieModeLabelTotal = "total"
	CalorieModePer100g    = "per100g"
)

var categoryLabels = map[entities.FoodCategory]string{
	entities.CategoryWetFood: "主食/處方飼料",
	entities.CategoryDryFood: "副食/乾飼料",
	entities.CategorySnack:   "凍乾/點心",
	entities.CategorySupp:    "保養品",
	entities.CategoryMed:     "藥品",
	entities.CategoryOther:   "其他",
}

// CategoryLabel returns the display label of a category, or the raw code
// when it has none.
func CategoryLabel(c entities.FoodCategory) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// CategoryFromLabel maps a display label back to its code.
func CategoryFromLabel(label string) (entities.FoodCategory, bool) {
	for code, l := range categoryLabels {
		if l == label {
			return code, true
		}
	}
	return "", false
}

type (
	// AddFoodRequest describes a food as read off its package label. In
	// "total" mode the label gives the whole package's kcal and weight; in
	// "per100g" mode it gives kcal per 100g directly.
	AddFoodRequest struct {
		Name            string  `json:"name" validate:"required"`
		Brand           string  `json:"brand"`
		Category        string  `json:"category" validate:"required,oneof=wet_food dry_food snack supp med other"`
		CalorieMode     string  `json:"calorie_mode" validate:"required,oneof=total per100g"`
		LabelWeight     float64 `json:"label_weight" validate:"gte=0"`
		LabelCal        float64 `json:"label_cal" validate:"gte=0"`
		CaloriesPer100g float64 `json:"calories_100g" validate:"gte=0"`
		ProteinPct      float64 `json:"protein_pct" validate:"gte=0"`
		FatPct          float64 `json:"fat_pct" validate:"gte=0"`
		PhosPct         float64 `json:"phos_pct" validate:"gte=0"`
		FiberPct        float64 `json:"fiber_pct" validate:"gte=0"`
		AshPct          float64 `json:"ash_pct" validate:"gte=0"`
		MoisturePct     float64 `json:"moisture_pct" validate:"gte=0,lte=100"`
		UnitType        string  `json:"unit_type" validate:"required,oneof=g piece ml"`
		PetID           string  `json:"pet_id" validate:"omitempty,uuid"`
	}

	FoodResponse struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		Brand           string  `json:"brand"`
		Category        string  `json:"category"`
		CategoryLabel   string  `json:"category_label"`
		DisplayName     string  `json:"display_name"`
		CaloriesPer100g float64 `json:"calories_100g"`
		UnitType        string  `json:"unit_type"`
		ProteinPct      float64 `json:"protein_pct"`
		FatPct          float64 `json:"fat_pct"`
		PhosPct         float64 `json:"phos_pct"`
		FiberPct        float64 `json:"fiber_pct"`
		AshPct          float64 `json:"ash_pct"`
		MoisturePct     float64 `json:"moisture_pct"`
		InMenu          bool    `json:"in_menu,omitempty"`
	}

	SyncMenuRequest struct {
		Category string   `json:"category" validate:"required,oneof=wet_food dry_food snack supp med other"`
		FoodIDs  []string `json:"food_ids" validate:"dive,uuid"`
	}

	SyncMenuResponse struct {
		Added   int `json:"added"`
		Removed int `json:"removed"`
	}
)
