package ledger

import (
	"PetDiary/entities"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DensityResolver struct {
	logs    LogStore
	catalog FoodCatalog
	window  int
	logger  *zap.Logger
}

func NewDensityResolver(logs LogStore, catalog FoodCatalog, logger *zap.Logger) *DensityResolver {
	return &DensityResolver{
		logs:    logs,
		catalog: catalog,
		window:  RecentIntakeWindow,
		logger:  logger,
	}
}

// Resolve returns the blended per-gram density of the pet's most recent meal.
// Every failure, including store errors, is reported as
// ErrInsufficientHistory so callers never price a leftover on a guess.
func (r *DensityResolver) Resolve(ctx context.Context, petID uuid.UUID) (Density, error) {
	recent, err := r.logs.FetchRecentIntake(ctx, petID, r.window)
	if err != nil {
		r.logger.Warn("fetch recent intake failed",
			zap.String("pet_id", petID.String()),
			zap.Error(err))
		return Density{}, ErrInsufficientHistory
	}

	meal, ok := latestMeal(recent)
	if !ok {
		return Density{}, ErrInsufficientHistory
	}

	names := make([]string, 0, len(meal))
	seen := make(map[string]struct{}, len(meal))
	for _, e := range meal {
		if _, dup := seen[e.FoodName]; dup {
			continue
		}
		seen[e.FoodName] = struct{}{}
		names = append(names, e.FoodName)
	}

	catalog, err := r.catalog.FetchCatalogByNames(ctx, names)
	if err != nil {
		r.logger.Warn("fetch catalog for density failed",
			zap.String("pet_id", petID.String()),
			zap.Strings("foods", names),
			zap.Error(err))
		return Density{}, ErrInsufficientHistory
	}

	density, ok := blend(meal, catalog)
	if !ok {
		return Density{}, ErrInsufficientHistory
	}
	return density, nil
}

// latestMeal picks the (meal name, date) of the newest positive entry and
// returns every entry of the window that shares it.
func latestMeal(recent []entities.DietLog) ([]entities.DietLog, bool) {
	var mealName, dateStr string
	found := false
	for _, e := range recent {
		if e.NetWeight > 0 {
			mealName, dateStr = e.MealName, e.DateStr
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	var meal []entities.DietLog
	for _, e := range recent {
		if e.MealName == mealName && e.DateStr == dateStr {
			meal = append(meal, e)
		}
	}
	return meal, true
}

func blend(meal []entities.DietLog, catalog map[string]entities.FoodItem) (Density, bool) {
	var weight, cal, protein, fat, phos float64
	for _, e := range meal {
		category, _ := categoryOf(catalog, e.FoodName)
		if !category.IsMealFood() || e.NetWeight <= 0 {
			continue
		}
		weight += e.NetWeight
		cal += e.Calories
		protein += e.Protein
		fat += e.Fat
		phos += e.Phos
	}
	if weight <= 0 {
		return Density{}, false
	}

	mealName, dateStr := meal[0].MealName, meal[0].DateStr
	return Density{
		Calories:   cal / weight,
		Protein:    protein / weight,
		Fat:        fat / weight,
		Phosphorus: phos / weight,
		MealName:   mealName,
		DateStr:    dateStr,
		Label:      fmt.Sprintf("%s %s", dateStr, mealName),
	}, true
}
