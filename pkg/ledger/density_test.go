package ledger

import (
	"PetDiary/entities"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mealFixture(petID uuid.UUID, at time.Time) []entities.DietLog {
	a := logEntry(petID, at, "第一餐", "food A", 80, 120, entities.LogTypeIntake)
	a.Protein, a.Fat, a.Phos = 8, 4, 0.16
	b := logEntry(petID, at.Add(time.Minute), "第一餐", "food B", 20, 40, entities.LogTypeIntake)
	b.Protein, b.Fat, b.Phos = 2, 1, 0.04
	return []entities.DietLog{a, b}
}

func densityCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string]entities.FoodItem{
		"food A":   food("food A", entities.CategoryWetFood, 80),
		"food B":   food("food B", entities.CategorySnack, 5),
		"vitamins": food("vitamins", entities.CategorySupp, 0),
		"pill":     food("pill", entities.CategoryMed, 0),
	}}
}

func TestResolve_BlendsMealEntries(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 7, 30, 0, 0, taipei)
	logs := &fakeLogStore{entries: mealFixture(petID, at)}
	resolver := NewDensityResolver(logs, densityCatalog(), zap.NewNop())

	density, err := resolver.Resolve(context.Background(), petID)

	require.NoError(t, err)
	assert.InDelta(t, 1.6, density.Calories, 1e-9)
	assert.InDelta(t, 0.1, density.Protein, 1e-9)
	assert.InDelta(t, 0.05, density.Fat, 1e-9)
	assert.InDelta(t, 0.002, density.Phosphorus, 1e-9)
	assert.Contains(t, density.Label, "2024-05-01")
	assert.Contains(t, density.Label, "第一餐")
	assert.Equal(t, "第一餐", density.MealName)
	assert.Equal(t, RecentIntakeWindow, logs.lastLimit)
}

func TestResolve_SupplementAndMedicationDoNotChangeDensity(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 7, 30, 0, 0, taipei)
	entries := mealFixture(petID, at)
	entries = append(entries,
		logEntry(petID, at.Add(2*time.Minute), "第一餐", "vitamins", 10, 100, entities.LogTypeIntake),
		logEntry(petID, at.Add(3*time.Minute), "第一餐", "pill", 1, 3, entities.LogTypeIntake),
	)
	logs := &fakeLogStore{entries: entries}
	resolver := NewDensityResolver(logs, densityCatalog(), zap.NewNop())

	density, err := resolver.Resolve(context.Background(), petID)

	require.NoError(t, err)
	assert.InDelta(t, 1.6, density.Calories, 1e-9)
}

func TestResolve_OnlyMostRecentMealCounts(t *testing.T) {
	petID := uuid.New()
	yesterday := time.Date(2024, 4, 30, 19, 0, 0, 0, taipei)
	today := time.Date(2024, 5, 1, 7, 30, 0, 0, taipei)

	entries := []entities.DietLog{
		// same label on a different day must not be merged
		logEntry(petID, yesterday, "第一餐", "food A", 50, 500, entities.LogTypeIntake),
		logEntry(petID, yesterday.Add(time.Hour), "第二餐", "food A", 50, 500, entities.LogTypeIntake),
	}
	entries = append(entries, mealFixture(petID, today)...)
	logs := &fakeLogStore{entries: entries}
	resolver := NewDensityResolver(logs, densityCatalog(), zap.NewNop())

	density, err := resolver.Resolve(context.Background(), petID)

	require.NoError(t, err)
	assert.InDelta(t, 1.6, density.Calories, 1e-9)
	assert.Equal(t, "2024-05-01 第一餐", density.Label)
}

func TestResolve_UnknownFoodCountsAsOther(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 7, 30, 0, 0, taipei)
	logs := &fakeLogStore{entries: []entities.DietLog{
		logEntry(petID, at, "第三餐", "discontinued pate", 50, 50, entities.LogTypeIntake),
	}}
	resolver := NewDensityResolver(logs, densityCatalog(), zap.NewNop())

	density, err := resolver.Resolve(context.Background(), petID)

	require.NoError(t, err)
	assert.InDelta(t, 1.0, density.Calories, 1e-9)
}

func TestResolve_LooksUpEachFoodOnce(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 7, 30, 0, 0, taipei)
	logs := &fakeLogStore{entries: []entities.DietLog{
		logEntry(petID, at, "第一餐", "food A", 40, 60, entities.LogTypeIntake),
		logEntry(petID, at.Add(time.Minute), "第一餐", "food A", 40, 60, entities.LogTypeIntake),
	}}
	catalog := densityCatalog()
	resolver := NewDensityResolver(logs, catalog, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), petID)

	require.NoError(t, err)
	assert.Equal(t, []string{"food A"}, catalog.lastNames)
}

func TestResolve_NotFound(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 7, 30, 0, 0, taipei)

	tests := []struct {
		name    string
		logs    *fakeLogStore
		catalog *fakeCatalog
	}{
		{
			name:    "empty history",
			logs:    &fakeLogStore{},
			catalog: densityCatalog(),
		},
		{
			name: "only waste entries",
			logs: &fakeLogStore{entries: []entities.DietLog{
				logEntry(petID, at, "早餐", MixedLeftoverFoodName, -20, -30, entities.LogTypeWaste),
			}},
			catalog: densityCatalog(),
		},
		{
			name:    "other pet's history",
			logs:    &fakeLogStore{entries: mealFixture(uuid.New(), at)},
			catalog: densityCatalog(),
		},
		{
			name: "meal made only of supplements",
			logs: &fakeLogStore{entries: []entities.DietLog{
				logEntry(petID, at, "第一餐", "vitamins", 10, 100, entities.LogTypeIntake),
			}},
			catalog: densityCatalog(),
		},
		{
			name:    "log store failure",
			logs:    &fakeLogStore{recentErr: errors.New("connection refused")},
			catalog: densityCatalog(),
		},
		{
			name:    "catalog failure",
			logs:    &fakeLogStore{entries: mealFixture(petID, at)},
			catalog: &fakeCatalog{err: errors.New("timeout")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewDensityResolver(tt.logs, tt.catalog, zap.NewNop())

			density, err := resolver.Resolve(context.Background(), petID)

			assert.ErrorIs(t, err, ErrInsufficientHistory)
			assert.Equal(t, Density{}, density)
		})
	}
}
