package ledger

import (
	"PetDiary/entities"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DailyAggregator struct {
	logs     LogStore
	catalog  FoodCatalog
	location *time.Location
	logger   *zap.Logger
}

func NewDailyAggregator(logs LogStore, catalog FoodCatalog, location *time.Location, logger *zap.Logger) *DailyAggregator {
	if location == nil {
		location = time.Local
	}
	return &DailyAggregator{
		logs:     logs,
		catalog:  catalog,
		location: location,
		logger:   logger,
	}
}

// Aggregate computes the pet's net nutrition for the calendar day of date.
// A store failure yields ErrTotalsUnavailable and zero totals, never a
// partial sum.
func (a *DailyAggregator) Aggregate(ctx context.Context, petID uuid.UUID, date time.Time) (DailyTotals, error) {
	from, to := DayBounds(date, a.location)
	dateKey := from.Format(DateKeyLayout)
	unavailable := DailyTotals{Date: dateKey}

	entries, err := a.logs.FetchEntries(ctx, petID, from, to)
	if err != nil {
		a.logger.Error("fetch daily entries failed",
			zap.String("pet_id", petID.String()),
			zap.String("date", dateKey),
			zap.Error(err))
		return unavailable, fmt.Errorf("%w: fetch entries: %v", ErrTotalsUnavailable, err)
	}

	if len(entries) == 0 {
		return DailyTotals{Date: dateKey, Available: true}, nil
	}

	catalog, err := a.catalog.FetchCatalog(ctx)
	if err != nil {
		a.logger.Error("fetch food catalog failed",
			zap.String("pet_id", petID.String()),
			zap.Error(err))
		return unavailable, fmt.Errorf("%w: fetch catalog: %v", ErrTotalsUnavailable, err)
	}

	totals := Summarize(entries, catalog)
	totals.Date = dateKey
	return totals, nil
}

// Summarize folds a day's entries into totals. It has no side effects and
// does not depend on entry order.
func Summarize(entries []entities.DietLog, catalog map[string]entities.FoodItem) DailyTotals {
	totals := DailyTotals{
		Available:  true,
		HasData:    len(entries) > 0,
		EntryCount: len(entries),
	}

	for _, e := range entries {
		category, moisture := categoryOf(catalog, e.FoodName)

		totals.NetCalories += e.Calories
		totals.NetProtein += e.Protein
		totals.NetFat += e.Fat
		totals.NetPhosphorus += e.Phos
		totals.Water += e.NetWeight * moisture / 100.0

		if !category.IsFood() {
			continue
		}
		totals.EatenMass += e.NetWeight
		if e.NetWeight > 0 {
			totals.InputMass += e.NetWeight
		}
	}

	return totals
}
