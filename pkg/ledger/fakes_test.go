package ledger

import (
	"PetDiary/entities"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// fakeLogStore implements LogStore over a slice.
type fakeLogStore struct {
	entries   []entities.DietLog
	fetchErr  error
	recentErr error
	appendErr error

	lastFrom, lastTo time.Time
	lastLimit        int
}

func (f *fakeLogStore) FetchEntries(_ context.Context, petID uuid.UUID, from, to time.Time) ([]entities.DietLog, error) {
	f.lastFrom, f.lastTo = from, to
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []entities.DietLog
	for _, e := range f.entries {
		if e.PetID != petID || e.LoggedAt.Before(from) || e.LoggedAt.After(to) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoggedAt.Before(out[j].LoggedAt) })
	return out, nil
}

func (f *fakeLogStore) FetchRecentIntake(_ context.Context, petID uuid.UUID, limit int) ([]entities.DietLog, error) {
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	var out []entities.DietLog
	for _, e := range f.entries {
		if e.PetID == petID && e.LogType == entities.LogTypeIntake {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLogStore) AppendEntries(_ context.Context, entries ...entities.DietLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entries...)
	return nil
}

// fakeCatalog implements FoodCatalog over a map.
type fakeCatalog struct {
	items     map[string]entities.FoodItem
	err       error
	lastNames []string
}

func (f *fakeCatalog) FetchCatalog(_ context.Context) (map[string]entities.FoodItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]entities.FoodItem, len(f.items))
	for k, v := range f.items {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCatalog) FetchCatalogByNames(_ context.Context, names []string) (map[string]entities.FoodItem, error) {
	f.lastNames = names
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]entities.FoodItem)
	for _, n := range names {
		if item, ok := f.items[n]; ok {
			out[n] = item
		}
	}
	return out, nil
}

func food(name string, category entities.FoodCategory, moisture float64) entities.FoodItem {
	return entities.FoodItem{ID: uuid.New(), Name: name, Category: category, MoisturePct: moisture, UnitType: entities.UnitGram}
}

func logEntry(petID uuid.UUID, at time.Time, meal, foodName string, weight, cal float64, kind entities.LogType) entities.DietLog {
	return entities.DietLog{
		ID:        uuid.New(),
		PetID:     petID,
		LoggedAt:  at,
		DateStr:   at.Format(DateKeyLayout),
		MealName:  meal,
		FoodName:  foodName,
		NetWeight: weight,
		Calories:  cal,
		LogType:   kind,
	}
}
