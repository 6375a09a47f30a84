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

var taipei = time.FixedZone("CST", 8*60*60)

func TestSummarize_SignedNetting(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)
	catalog := map[string]entities.FoodItem{"tuna can": food("tuna can", entities.CategoryWetFood, 0)}

	entries := []entities.DietLog{
		logEntry(petID, at, "第一餐", "tuna can", 100, 50, entities.LogTypeIntake),
		logEntry(petID, at.Add(time.Hour), "早餐", "tuna can", -30, -15, entities.LogTypeWaste),
	}

	totals := Summarize(entries, catalog)

	assert.InDelta(t, 35.0, totals.NetCalories, 1e-9)
	assert.InDelta(t, 70.0, totals.EatenMass, 1e-9)
	assert.InDelta(t, 100.0, totals.InputMass, 1e-9)
	assert.True(t, totals.HasData)
	assert.Equal(t, 2, totals.EntryCount)
}

func TestSummarize_ExcludesMedicationFromMass(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)
	catalog := map[string]entities.FoodItem{
		"kibble": food("kibble", entities.CategoryDryFood, 10),
		"pill":   food("pill", entities.CategoryMed, 0),
	}

	med := logEntry(petID, at, "第一餐", "pill", 5, 2, entities.LogTypeIntake)
	med.Protein = 1
	med.Fat = 0.5
	med.Phos = 0.1

	entries := []entities.DietLog{
		logEntry(petID, at, "第一餐", "kibble", 20, 80, entities.LogTypeIntake),
		med,
	}

	totals := Summarize(entries, catalog)

	assert.InDelta(t, 20.0, totals.InputMass, 1e-9)
	assert.InDelta(t, 20.0, totals.EatenMass, 1e-9)
	assert.InDelta(t, 82.0, totals.NetCalories, 1e-9)
	assert.InDelta(t, 1.0, totals.NetProtein, 1e-9)
	assert.InDelta(t, 0.5, totals.NetFat, 1e-9)
	assert.InDelta(t, 0.1, totals.NetPhosphorus, 1e-9)
}

func TestSummarize_SupplementExcludedFromMass(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)
	catalog := map[string]entities.FoodItem{"fish oil": food("fish oil", entities.CategorySupp, 0)}

	totals := Summarize([]entities.DietLog{
		logEntry(petID, at, "第一餐", "fish oil", 3, 27, entities.LogTypeIntake),
	}, catalog)

	assert.Zero(t, totals.InputMass)
	assert.Zero(t, totals.EatenMass)
	assert.InDelta(t, 27.0, totals.NetCalories, 1e-9)
}

func TestSummarize_Water(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)
	catalog := map[string]entities.FoodItem{"pate": food("pate", entities.CategoryWetFood, 80)}

	totals := Summarize([]entities.DietLog{
		logEntry(petID, at, "第一餐", "pate", 50, 45, entities.LogTypeIntake),
	}, catalog)

	assert.InDelta(t, 40.0, totals.Water, 1e-9)
}

func TestSummarize_UnknownFoodJoinsAsOther(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)

	totals := Summarize([]entities.DietLog{
		logEntry(petID, at, "第一餐", "renamed food", 40, 60, entities.LogTypeIntake),
		logEntry(petID, at.Add(time.Hour), "早餐", MixedLeftoverFoodName, -10, -15, entities.LogTypeWaste),
	}, map[string]entities.FoodItem{})

	assert.InDelta(t, 40.0, totals.InputMass, 1e-9)
	assert.InDelta(t, 30.0, totals.EatenMass, 1e-9)
	assert.Zero(t, totals.Water)
	assert.InDelta(t, 45.0, totals.NetCalories, 1e-9)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)
	catalog := map[string]entities.FoodItem{
		"pate":   food("pate", entities.CategoryWetFood, 78),
		"kibble": food("kibble", entities.CategoryDryFood, 8),
	}
	entries := []entities.DietLog{
		logEntry(petID, at, "第一餐", "pate", 85, 90, entities.LogTypeIntake),
		logEntry(petID, at, "第一餐", "kibble", 15, 60, entities.LogTypeIntake),
		logEntry(petID, at.Add(2*time.Hour), "早餐", MixedLeftoverFoodName, -12, -18, entities.LogTypeWaste),
	}
	reversed := []entities.DietLog{entries[2], entries[1], entries[0]}

	assert.Equal(t, Summarize(entries, catalog), Summarize(reversed, catalog))
}

func TestAggregate_EmptyDayIsNoData(t *testing.T) {
	logs := &fakeLogStore{}
	catalog := &fakeCatalog{err: errors.New("catalog must not be read")}
	agg := NewDailyAggregator(logs, catalog, taipei, zap.NewNop())

	totals, err := agg.Aggregate(context.Background(), uuid.New(), time.Date(2024, 5, 1, 12, 0, 0, 0, taipei))

	require.NoError(t, err)
	assert.True(t, totals.Available)
	assert.False(t, totals.HasData)
	assert.Equal(t, "2024-05-01", totals.Date)
	assert.Zero(t, totals.NetCalories)
}

func TestAggregate_UsesLocalDayBoundsAndPetScope(t *testing.T) {
	petID := uuid.New()
	other := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, taipei)
	logs := &fakeLogStore{entries: []entities.DietLog{
		logEntry(petID, day.Add(-time.Minute), "第十餐", "pate", 10, 10, entities.LogTypeIntake),
		logEntry(petID, day, "第一餐", "pate", 30, 30, entities.LogTypeIntake),
		logEntry(petID, day.Add(23*time.Hour+59*time.Minute+59*time.Second), "第九餐", "pate", 20, 20, entities.LogTypeIntake),
		logEntry(petID, day.Add(24*time.Hour), "第一餐", "pate", 40, 40, entities.LogTypeIntake),
		logEntry(other, day.Add(time.Hour), "第一餐", "pate", 500, 500, entities.LogTypeIntake),
	}}
	catalog := &fakeCatalog{items: map[string]entities.FoodItem{"pate": food("pate", entities.CategoryWetFood, 0)}}
	agg := NewDailyAggregator(logs, catalog, taipei, zap.NewNop())

	totals, err := agg.Aggregate(context.Background(), petID, day.Add(15*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, taipei), logs.lastFrom)
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 0, taipei), logs.lastTo)
	assert.InDelta(t, 50.0, totals.NetCalories, 1e-9)
	assert.Equal(t, 2, totals.EntryCount)
}

func TestAggregate_StoreFailureReturnsNoPartialTotals(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)

	tests := []struct {
		name    string
		logs    *fakeLogStore
		catalog *fakeCatalog
	}{
		{
			name:    "entries fetch fails",
			logs:    &fakeLogStore{fetchErr: errors.New("connection reset")},
			catalog: &fakeCatalog{},
		},
		{
			name: "catalog fetch fails",
			logs: &fakeLogStore{entries: []entities.DietLog{
				logEntry(petID, at, "第一餐", "pate", 50, 60, entities.LogTypeIntake),
			}},
			catalog: &fakeCatalog{err: errors.New("timeout")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewDailyAggregator(tt.logs, tt.catalog, taipei, zap.NewNop())

			totals, err := agg.Aggregate(context.Background(), petID, at)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTotalsUnavailable)
			assert.False(t, totals.Available)
			assert.Zero(t, totals.NetCalories)
			assert.Zero(t, totals.EntryCount)
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	petID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, taipei)
	logs := &fakeLogStore{entries: []entities.DietLog{
		logEntry(petID, at, "第一餐", "pate", 100, 50, entities.LogTypeIntake),
		logEntry(petID, at.Add(time.Hour), "早餐", MixedLeftoverFoodName, -30, -15, entities.LogTypeWaste),
	}}
	catalog := &fakeCatalog{items: map[string]entities.FoodItem{"pate": food("pate", entities.CategoryWetFood, 80)}}
	agg := NewDailyAggregator(logs, catalog, taipei, zap.NewNop())

	first, err := agg.Aggregate(context.Background(), petID, at)
	require.NoError(t, err)
	second, err := agg.Aggregate(context.Background(), petID, at)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, logs.entries, 2)
}

func TestDayBounds(t *testing.T) {
	utcEvening := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	from, to := DayBounds(utcEvening, taipei)

	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, taipei), from)
	assert.Equal(t, time.Date(2024, 5, 2, 23, 59, 59, 0, taipei), to)
}
