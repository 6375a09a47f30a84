package ledger

import (
	"PetDiary/entities"
	"fmt"
)

// ToRatio converts an entered quantity into the multiplier applied to the
// catalog's nutrient values. Gram foods are described per 100g; pieces and
// millilitres are described per unit.
func ToRatio(quantity float64, unit entities.UnitType) (float64, error) {
	switch unit {
	case entities.UnitGram, "":
		return quantity / 100.0, nil
	case entities.UnitPiece, entities.UnitMilliliter:
		return quantity, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}
