package ledger

import (
	"PetDiary/entities"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewIntakeEntry scales the catalog composition of item by the entered
// quantity. at must already be in the diary's time zone; its calendar date
// becomes the entry's date key.
func NewIntakeEntry(petID uuid.UUID, item entities.FoodItem, quantity float64, mealName string, at time.Time) (entities.DietLog, error) {
	if quantity <= 0 {
		return entities.DietLog{}, ErrInvalidQuantity
	}

	ratio, err := ToRatio(quantity, item.UnitType)
	if err != nil {
		return entities.DietLog{}, err
	}

	entry := entities.DietLog{
		ID:        uuid.New(),
		PetID:     petID,
		LoggedAt:  at,
		DateStr:   at.Format(DateKeyLayout),
		MealName:  mealName,
		FoodName:  item.Name,
		NetWeight: quantity,
		Calories:  item.CaloriesPer100g * ratio,
		Protein:   item.ProteinPct * ratio,
		Fat:       item.FatPct * ratio,
		Phos:      item.PhosPct * ratio,
		LogType:   entities.LogTypeIntake,
	}

	if err := checkSigns(entry); err != nil {
		return entities.DietLog{}, err
	}
	return entry, nil
}

// NewLeftoverEntry builds the negated deduction for weight grams of food left
// in the bowl, priced at the given density.
func NewLeftoverEntry(petID uuid.UUID, density Density, weight float64, mealName string, at time.Time) (entities.DietLog, error) {
	if weight <= 0 {
		return entities.DietLog{}, ErrInvalidQuantity
	}

	entry := entities.DietLog{
		ID:        uuid.New(),
		PetID:     petID,
		LoggedAt:  at,
		DateStr:   at.Format(DateKeyLayout),
		MealName:  mealName,
		FoodName:  MixedLeftoverFoodName,
		NetWeight: -weight,
		Calories:  -weight * density.Calories,
		Protein:   -weight * density.Protein,
		Fat:       -weight * density.Fat,
		Phos:      -weight * density.Phosphorus,
		LogType:   entities.LogTypeWaste,
	}

	if err := checkSigns(entry); err != nil {
		return entities.DietLog{}, err
	}
	return entry, nil
}

// checkSigns enforces that macros and mass move in the same direction.
// Zero macros are allowed on either side.
func checkSigns(entry entities.DietLog) error {
	macros := map[string]float64{
		"calories": entry.Calories,
		"protein":  entry.Protein,
		"fat":      entry.Fat,
		"phos":     entry.Phos,
	}
	for field, v := range macros {
		if v == 0 {
			continue
		}
		if (v > 0) != (entry.NetWeight > 0) {
			return fmt.Errorf("%w: %s=%.3f net_weight=%.3f", ErrSignMismatch, field, v, entry.NetWeight)
		}
	}
	return nil
}
