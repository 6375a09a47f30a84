// Package ledger reconciles signed feeding and leftover entries into daily
// nutrition totals and infers the nutrient density of the most recent meal.
//
// The package only reads from its stores and never mutates history. Both
// stores are passed in as interfaces so the arithmetic can be exercised
// against in-memory fakes.
package ledger

import (
	"PetDiary/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// RecentIntakeWindow bounds how far back the density lookup scans.
	RecentIntakeWindow = 50

	// MixedLeftoverFoodName is written as the food name of every leftover
	// entry. It is never a catalog key.
	MixedLeftoverFoodName = "mixed leftover"

	DateKeyLayout = "2006-01-02"
)

var (
	ErrInsufficientHistory = errors.New("no recent feeding with food mass found")
	ErrTotalsUnavailable   = errors.New("daily totals unavailable")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrUnknownUnit         = errors.New("unknown unit type")
	ErrSignMismatch        = errors.New("macro sign does not match net weight sign")
)

type (
	LogStore interface {
		// FetchEntries returns the pet's entries with from <= timestamp <= to,
		// oldest first.
		FetchEntries(ctx context.Context, petID uuid.UUID, from, to time.Time) ([]entities.DietLog, error)
		// FetchRecentIntake returns at most limit intake entries, newest first.
		FetchRecentIntake(ctx context.Context, petID uuid.UUID, limit int) ([]entities.DietLog, error)
		AppendEntries(ctx context.Context, entries ...entities.DietLog) error
	}

	FoodCatalog interface {
		FetchCatalog(ctx context.Context) (map[string]entities.FoodItem, error)
		FetchCatalogByNames(ctx context.Context, names []string) (map[string]entities.FoodItem, error)
	}

	DailyTotals struct {
		Date          string  `json:"date"`
		Available     bool    `json:"available"`
		HasData       bool    `json:"has_data"`
		EntryCount    int     `json:"entry_count"`
		NetCalories   float64 `json:"net_calories"`
		NetProtein    float64 `json:"net_protein"`
		NetFat        float64 `json:"net_fat"`
		NetPhosphorus float64 `json:"net_phosphorus"`
		Water         float64 `json:"water"`
		InputMass     float64 `json:"input_mass"`
		EatenMass     float64 `json:"eaten_mass"`
	}

	// Density is the per-gram nutrient content of a blended meal.
	Density struct {
		Calories   float64 `json:"density_cal"`
		Protein    float64 `json:"density_prot"`
		Fat        float64 `json:"density_fat"`
		Phosphorus float64 `json:"density_phos"`
		MealName   string  `json:"meal_name"`
		DateStr    string  `json:"date_str"`
		Label      string  `json:"info"`
	}
)

// DayBounds returns the first and last second of date's calendar day in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
	return start, end
}

// categoryOf joins an entry to the catalog. Unknown names fall back to
// "other" with zero moisture.
func categoryOf(catalog map[string]entities.FoodItem, name string) (entities.FoodCategory, float64) {
	item, ok := catalog[name]
	if !ok {
		return entities.CategoryOther, 0
	}
	category := item.Category
	if category == "" {
		category = entities.CategoryOther
	}
	return category, item.MoisturePct
}
