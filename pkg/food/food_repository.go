package food

import (
	"PetDiary/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFood(ctx context.Context, food *entities.FoodItem) error
		AddFoodToMenu(ctx context.Context, food *entities.FoodItem, petID uuid.UUID) error
		GetFoodByID(ctx context.Context, id string) (*entities.FoodItem, error)
		GetFoods(ctx context.Context, category string) ([]*entities.FoodItem, error)

		// Menu (pet_food_relations)
		GetPetMenu(ctx context.Context, petID uuid.UUID) ([]*entities.FoodItem, error)
		GetPetMenuFoodIDs(ctx context.Context, petID uuid.UUID) ([]uuid.UUID, error)
		IsOnMenu(ctx context.Context, petID, foodID uuid.UUID) (bool, error)
		AddMenuRelations(ctx context.Context, petID uuid.UUID, foodIDs []uuid.UUID) error
		RemoveMenuRelations(ctx context.Context, petID uuid.UUID, foodIDs []uuid.UUID) error
		CountMenuRelations(ctx context.Context, petID uuid.UUID) (int64, error)

		// Read-only catalog lookups keyed by food name
		FetchCatalog(ctx context.Context) (map[string]entities.FoodItem, error)
		FetchCatalogByNames(ctx context.Context, names []string) (map[string]entities.FoodItem, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFood(ctx context.Context, food *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) AddFoodToMenu(ctx context.Context, food *entities.FoodItem, petID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(food).Error; err != nil {
			return err
		}
		relation := &entities.PetFoodRelation{
			ID:       uuid.New(),
			PetID:    petID,
			FoodID:   food.ID,
			IsActive: true,
		}
		return tx.Create(relation).Error
	})
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var food entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) GetFoods(ctx context.Context, category string) ([]*entities.FoodItem, error) {
	var foods []*entities.FoodItem

	query := r.db.WithContext(ctx)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("category asc, name asc").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) GetPetMenu(ctx context.Context, petID uuid.UUID) ([]*entities.FoodItem, error) {
	var foods []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN pet_food_relations ON pet_food_relations.food_id = food_library.id").
		Where("pet_food_relations.pet_id = ? AND pet_food_relations.is_active = ?", petID, true).
		Order("food_library.category asc, food_library.name asc").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) GetPetMenuFoodIDs(ctx context.Context, petID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.PetFoodRelation{}).
		Where("pet_id = ?", petID).
		Pluck("food_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *foodRepository) IsOnMenu(ctx context.Context, petID, foodID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.PetFoodRelation{}).
		Where("pet_id = ? AND food_id = ? AND is_active = ?", petID, foodID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *foodRepository) AddMenuRelations(ctx context.Context, petID uuid.UUID, foodIDs []uuid.UUID) error {
	if len(foodIDs) == 0 {
		return nil
	}
	relations := make([]entities.PetFoodRelation, 0, len(foodIDs))
	for _, id := range foodIDs {
		relations = append(relations, entities.PetFoodRelation{
			ID:       uuid.New(),
			PetID:    petID,
			FoodID:   id,
			IsActive: true,
		})
	}
	return r.db.WithContext(ctx).Create(&relations).Error
}

func (r *foodRepository) RemoveMenuRelations(ctx context.Context, petID uuid.UUID, foodIDs []uuid.UUID) error {
	if len(foodIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("pet_id = ? AND food_id IN ?", petID, foodIDs).
		Delete(&entities.PetFoodRelation{}).Error
}

func (r *foodRepository) CountMenuRelations(ctx context.Context, petID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.PetFoodRelation{}).
		Where("pet_id = ?", petID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FetchCatalog loads the whole library keyed by name. When two rows share a
// name the most recently created one wins.
func (r *foodRepository) FetchCatalog(ctx context.Context) (map[string]entities.FoodItem, error) {
	var foods []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return indexByName(foods), nil
}

func (r *foodRepository) FetchCatalogByNames(ctx context.Context, names []string) (map[string]entities.FoodItem, error) {
	if len(names) == 0 {
		return map[string]entities.FoodItem{}, nil
	}
	var foods []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("created_at asc").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return indexByName(foods), nil
}

func indexByName(foods []entities.FoodItem) map[string]entities.FoodItem {
	catalog := make(map[string]entities.FoodItem, len(foods))
	for _, f := range foods {
		catalog[f.Name] = f
	}
	return catalog
}
