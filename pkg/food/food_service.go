package food

import (
	"PetDiary/domain"
	"PetDiary/entities"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFood(ctx context.Context, req domain.AddFoodRequest) (domain.FoodResponse, error)
		GetFoods(ctx context.Context, category string, petID string) ([]domain.FoodResponse, error)
		GetPetMenu(ctx context.Context, petID string) ([]domain.FoodResponse, error)
		SyncMenu(ctx context.Context, petID string, req domain.SyncMenuRequest) (domain.SyncMenuResponse, error)
	}

	// PetLookup is the slice of the profile store the catalog needs.
	PetLookup interface {
		GetPetByID(ctx context.Context, id string) (*entities.Pet, error)
	}

	foodService struct {
		foodRepository FoodRepository
		pets           PetLookup
		logger         *zap.Logger
	}
)

func NewFoodService(foodRepository FoodRepository, pets PetLookup, logger *zap.Logger) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		pets:           pets,
		logger:         logger,
	}
}

func (s *foodService) AddFood(ctx context.Context, req domain.AddFoodRequest) (domain.FoodResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FoodResponse{}, domain.ErrFoodNameRequired
	}

	category := entities.FoodCategory(req.Category)
	if !category.Valid() {
		return domain.FoodResponse{}, domain.ErrInvalidCategory
	}

	per100g, labelCal, err := resolveCalories(req)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	food := &entities.FoodItem{
		ID:              uuid.New(),
		Name:            name,
		Brand:           strings.TrimSpace(req.Brand),
		Category:        category,
		CaloriesPer100g: per100g,
		UnitType:        entities.UnitType(req.UnitType),
		ProteinPct:      req.ProteinPct,
		FatPct:          req.FatPct,
		PhosPct:         req.PhosPct,
		FiberPct:        req.FiberPct,
		AshPct:          req.AshPct,
		MoisturePct:     req.MoisturePct,
		LabelWeight:     req.LabelWeight,
		LabelCal:        labelCal,
	}

	if req.PetID == "" {
		if err := s.foodRepository.AddFood(ctx, food); err != nil {
			return domain.FoodResponse{}, err
		}
		return toFoodResponse(food, false), nil
	}

	pet, err := s.findPet(ctx, req.PetID)
	if err != nil {
		return domain.FoodResponse{}, err
	}
	if err := s.foodRepository.AddFoodToMenu(ctx, food, pet.ID); err != nil {
		return domain.FoodResponse{}, err
	}

	s.logger.Info("food added to library and menu",
		zap.String("food", food.Name),
		zap.String("pet_id", pet.ID.String()))
	return toFoodResponse(food, true), nil
}

func (s *foodService) GetFoods(ctx context.Context, category string, petID string) ([]domain.FoodResponse, error) {
	foods, err := s.foodRepository.GetFoods(ctx, category)
	if err != nil {
		return nil, err
	}

	inMenu := map[uuid.UUID]bool{}
	if petID != "" {
		pet, err := s.findPet(ctx, petID)
		if err != nil {
			return nil, err
		}
		ids, err := s.foodRepository.GetPetMenuFoodIDs(ctx, pet.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			inMenu[id] = true
		}
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, f := range foods {
		response = append(response, toFoodResponse(f, inMenu[f.ID]))
	}
	return response, nil
}

func (s *foodService) GetPetMenu(ctx context.Context, petID string) ([]domain.FoodResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	foods, err := s.foodRepository.GetPetMenu(ctx, pet.ID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, f := range foods {
		response = append(response, toFoodResponse(f, true))
	}
	return response, nil
}

// SyncMenu makes the pet's menu within one category match the selection.
// Menu entries of other categories are left untouched.
func (s *foodService) SyncMenu(ctx context.Context, petID string, req domain.SyncMenuRequest) (domain.SyncMenuResponse, error) {
	pet, err := s.findPet(ctx, petID)
	if err != nil {
		return domain.SyncMenuResponse{}, err
	}

	selected := make([]uuid.UUID, 0, len(req.FoodIDs))
	for _, raw := range req.FoodIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domain.SyncMenuResponse{}, domain.ErrParseUUID
		}
		selected = append(selected, id)
	}

	categoryFoods, err := s.foodRepository.GetFoods(ctx, req.Category)
	if err != nil {
		return domain.SyncMenuResponse{}, err
	}
	inCategory := make([]uuid.UUID, 0, len(categoryFoods))
	for _, f := range categoryFoods {
		inCategory = append(inCategory, f.ID)
	}

	current, err := s.foodRepository.GetPetMenuFoodIDs(ctx, pet.ID)
	if err != nil {
		return domain.SyncMenuResponse{}, err
	}

	toAdd, toRemove, err := diffMenu(current, inCategory, selected)
	if err != nil {
		return domain.SyncMenuResponse{}, err
	}

	if err := s.foodRepository.AddMenuRelations(ctx, pet.ID, toAdd); err != nil {
		return domain.SyncMenuResponse{}, err
	}
	if err := s.foodRepository.RemoveMenuRelations(ctx, pet.ID, toRemove); err != nil {
		return domain.SyncMenuResponse{}, err
	}

	s.logger.Info("menu synced",
		zap.String("pet_id", pet.ID.String()),
		zap.String("category", req.Category),
		zap.Int("added", len(toAdd)),
		zap.Int("removed", len(toRemove)))

	return domain.SyncMenuResponse{Added: len(toAdd), Removed: len(toRemove)}, nil
}

func (s *foodService) findPet(ctx context.Context, petID string) (*entities.Pet, error) {
	if _, err := uuid.Parse(petID); err != nil {
		return nil, domain.ErrParseUUID
	}
	pet, err := s.pets.GetPetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

// resolveCalories derives kcal per 100g and the label's total kcal from
// whichever pair the operator read off the package.
func resolveCalories(req domain.AddFoodRequest) (float64, float64, error) {
	var per100g, labelCal float64

	switch req.CalorieMode {
	case domain.CalorieModeLabelTotal:
		labelCal = req.LabelCal
		if req.LabelWeight > 0 {
			per100g = req.LabelCal / req.LabelWeight * 100
		}
	case domain.CalorieModePer100g:
		per100g = req.CaloriesPer100g
		if req.LabelWeight > 0 {
			labelCal = per100g * req.LabelWeight / 100
		}
	default:
		return 0, 0, fmt.Errorf("unknown calorie mode %q", req.CalorieMode)
	}

	if per100g <= 0 {
		return 0, 0, domain.ErrInvalidCalories
	}
	return per100g, labelCal, nil
}

// diffMenu returns the relations to create and delete so that the menu's
// entries within a category equal selected.
func diffMenu(current, inCategory, selected []uuid.UUID) (toAdd, toRemove []uuid.UUID, err error) {
	categorySet := make(map[uuid.UUID]bool, len(inCategory))
	for _, id := range inCategory {
		categorySet[id] = true
	}
	currentSet := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	selectedSet := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		if !categorySet[id] {
			return nil, nil, domain.ErrFoodNotInCategory
		}
		if selectedSet[id] {
			continue
		}
		selectedSet[id] = true
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}

	for _, id := range current {
		if categorySet[id] && !selectedSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove, nil
}

func toFoodResponse(f *entities.FoodItem, inMenu bool) domain.FoodResponse {
	label := domain.CategoryLabel(f.Category)
	return domain.FoodResponse{
		ID:              f.ID.String(),
		Name:            f.Name,
		Brand:           f.Brand,
		Category:        string(f.Category),
		CategoryLabel:   label,
		DisplayName:     fmt.Sprintf("[%s] %s - %s", label, f.Brand, f.Name),
		CaloriesPer100g: f.CaloriesPer100g,
		UnitType:        string(f.UnitType),
		ProteinPct:      f.ProteinPct,
		FatPct:          f.FatPct,
		PhosPct:         f.PhosPct,
		FiberPct:        f.FiberPct,
		AshPct:          f.AshPct,
		MoisturePct:     f.MoisturePct,
		InMenu:          inMenu,
	}
}
