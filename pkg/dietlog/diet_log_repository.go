package dietlog

import (
	"PetDiary/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// DietLogRepository is the append-only diary store. It satisfies
	// ledger.LogStore.
	DietLogRepository interface {
		FetchEntries(ctx context.Context, petID uuid.UUID, from, to time.Time) ([]entities.DietLog, error)
		FetchRecentIntake(ctx context.Context, petID uuid.UUID, limit int) ([]entities.DietLog, error)
		AppendEntries(ctx context.Context, entries ...entities.DietLog) error
		GetAllLogs(ctx context.Context, petID uuid.UUID) ([]entities.DietLog, error)
	}

	dietLogRepository struct {
		db *gorm.DB
	}
)

func NewDietLogRepository(db *gorm.DB) DietLogRepository {
	return &dietLogRepository{db: db}
}

func (r *dietLogRepository) FetchEntries(ctx context.Context, petID uuid.UUID, from, to time.Time) ([]entities.DietLog, error) {
	var logs []entities.DietLog
	if err := r.db.WithContext(ctx).
		Where("pet_id = ? AND timestamp >= ? AND timestamp <= ?", petID, from, to).
		Order("timestamp asc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *dietLogRepository) FetchRecentIntake(ctx context.Context, petID uuid.UUID, limit int) ([]entities.DietLog, error) {
	var logs []entities.DietLog
	if err := r.db.WithContext(ctx).
		Where("pet_id = ? AND log_type = ?", petID, entities.LogTypeIntake).
		Order("timestamp desc").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *dietLogRepository) AppendEntries(ctx context.Context, entries ...entities.DietLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

// GetAllLogs returns the pet's whole diary, newest first.
func (r *dietLogRepository) GetAllLogs(ctx context.Context, petID uuid.UUID) ([]entities.DietLog, error) {
	var logs []entities.DietLog
	if err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("timestamp desc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
