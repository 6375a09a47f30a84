package pet

import (
	"PetDiary/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PetRepository interface {
		CreatePet(ctx context.Context, pet *entities.Pet) error
		GetPetByID(ctx context.Context, id string) (*entities.Pet, error)
		GetPets(ctx context.Context) ([]*entities.Pet, error)
		UpdatePet(ctx context.Context, pet *entities.Pet) error
		ArchivePet(ctx context.Context, id uuid.UUID, reason string) error
		DeletePet(ctx context.Context, id uuid.UUID) error
		CountRecords(ctx context.Context, id uuid.UUID) (int64, error)
	}

	petRepository struct {
		db *gorm.DB
	}
)

func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) CreatePet(ctx context.Context, pet *entities.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

// GetPetByID never returns archived pets.
func (r *petRepository) GetPetByID(ctx context.Context, id string) (*entities.Pet, error) {
	var pet entities.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) GetPets(ctx context.Context) ([]*entities.Pet, error) {
	var pets []*entities.Pet
	if err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at asc").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) UpdatePet(ctx context.Context, pet *entities.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

func (r *petRepository) ArchivePet(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Pet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted":      true,
			"deletion_reason": reason,
		}).Error
}

func (r *petRepository) DeletePet(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&entities.PetFoodRelation{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Pet{}).Error
	})
}

// CountRecords returns how many menu relations and diet log entries
// reference the pet.
func (r *petRepository) CountRecords(ctx context.Context, id uuid.UUID) (int64, error) {
	var menu, logs int64
	if err := r.db.WithContext(ctx).
		Model(&entities.PetFoodRelation{}).
		Where("pet_id = ?", id).
		Count(&menu).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.DietLog{}).
		Where("pet_id = ?", id).
		Count(&logs).Error; err != nil {
		return 0, err
	}
	return menu + logs, nil
}
