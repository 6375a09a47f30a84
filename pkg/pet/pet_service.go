package pet

import (
	"PetDiary/domain"
	"PetDiary/entities"
	"PetDiary/internal/utils/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	PetService interface {
		CreatePet(ctx context.Context, req domain.CreatePetRequest) (domain.PetResponse, error)
		GetPets(ctx context.Context) ([]domain.PetResponse, error)
		GetPet(ctx context.Context, id string) (domain.PetResponse, error)
		UpdatePet(ctx context.Context, id string, req domain.UpdatePetRequest) (domain.PetResponse, error)
		DeletePet(ctx context.Context, id string, req domain.DeletePetRequest) (domain.DeletePetResponse, error)
		UploadPhoto(ctx context.Context, id string, req domain.UploadPetPhotoRequest) (domain.PetResponse, error)
	}

	petService struct {
		petRepository PetRepository
		s3            storage.AwsS3
		logger        *zap.Logger
		now           func() time.Time
	}
)

func NewPetService(petRepository PetRepository, s3 storage.AwsS3, logger *zap.Logger) PetService {
	return &petService{
		petRepository: petRepository,
		s3:            s3,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *petService) CreatePet(ctx context.Context, req domain.CreatePetRequest) (domain.PetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.PetResponse{}, domain.ErrPetNameRequired
	}

	tags, err := encodeHealthTags(req.HealthTags)
	if err != nil {
		return domain.PetResponse{}, err
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return domain.PetResponse{}, err
	}

	pet := &entities.Pet{
		ID:         uuid.New(),
		Name:       name,
		BirthDate:  birthDate,
		Gender:     req.Gender,
		Breed:      req.Breed,
		Weight:     req.Weight,
		HealthTags: tags,
		HealthDesc: req.HealthDesc,
	}
	if err := s.petRepository.CreatePet(ctx, pet); err != nil {
		return domain.PetResponse{}, err
	}

	s.logger.Info("pet created", zap.String("pet_id", pet.ID.String()), zap.String("name", pet.Name))
	return s.toPetResponse(pet), nil
}

func (s *petService) GetPets(ctx context.Context) ([]domain.PetResponse, error) {
	pets, err := s.petRepository.GetPets(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PetResponse, 0, len(pets))
	for _, p := range pets {
		response = append(response, s.toPetResponse(p))
	}
	return response, nil
}

func (s *petService) GetPet(ctx context.Context, id string) (domain.PetResponse, error) {
	pet, err := s.findPet(ctx, id)
	if err != nil {
		return domain.PetResponse{}, err
	}
	return s.toPetResponse(pet), nil
}

func (s *petService) UpdatePet(ctx context.Context, id string, req domain.UpdatePetRequest) (domain.PetResponse, error) {
	pet, err := s.findPet(ctx, id)
	if err != nil {
		return domain.PetResponse{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		pet.Name = name
	}
	if req.BirthDate != "" {
		birthDate, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return domain.PetResponse{}, err
		}
		pet.BirthDate = birthDate
	}
	if req.Gender != "" {
		pet.Gender = req.Gender
	}
	if req.Breed != "" {
		pet.Breed = req.Breed
	}
	if req.Weight != nil {
		pet.Weight = *req.Weight
	}
	if req.HealthTags != nil {
		tags, err := encodeHealthTags(req.HealthTags)
		if err != nil {
			return domain.PetResponse{}, err
		}
		pet.HealthTags = tags
	}
	if req.HealthDesc != nil {
		pet.HealthDesc = *req.HealthDesc
	}

	if err := s.petRepository.UpdatePet(ctx, pet); err != nil {
		return domain.PetResponse{}, err
	}
	return s.toPetResponse(pet), nil
}

// DeletePet archives a pet that has menu or diary records, which requires a
// reason, and removes it outright otherwise.
func (s *petService) DeletePet(ctx context.Context, id string, req domain.DeletePetRequest) (domain.DeletePetResponse, error) {
	pet, err := s.findPet(ctx, id)
	if err != nil {
		return domain.DeletePetResponse{}, err
	}

	records, err := s.petRepository.CountRecords(ctx, pet.ID)
	if err != nil {
		return domain.DeletePetResponse{}, err
	}

	if records > 0 {
		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			return domain.DeletePetResponse{}, domain.ErrDeletionReasonMissing
		}
		if err := s.petRepository.ArchivePet(ctx, pet.ID, reason); err != nil {
			return domain.DeletePetResponse{}, err
		}
		s.logger.Info("pet archived",
			zap.String("pet_id", pet.ID.String()),
			zap.Int64("records", records),
			zap.String("reason", reason))
		return domain.DeletePetResponse{ID: pet.ID.String(), Archived: true}, nil
	}

	if err := s.petRepository.DeletePet(ctx, pet.ID); err != nil {
		return domain.DeletePetResponse{}, err
	}
	if key := s.s3.GetObjectKeyFromLink(pet.ImageURL); key != "" {
		if err := s.s3.DeleteFile(key); err != nil {
			s.logger.Warn("delete pet photo failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.logger.Info("pet deleted", zap.String("pet_id", pet.ID.String()))
	return domain.DeletePetResponse{ID: pet.ID.String(), Archived: false}, nil
}

func (s *petService) UploadPhoto(ctx context.Context, id string, req domain.UploadPetPhotoRequest) (domain.PetResponse, error) {
	pet, err := s.findPet(ctx, id)
	if err != nil {
		return domain.PetResponse{}, err
	}

	fileName := fmt.Sprintf("pet-%s", pet.ID.String())
	var objectKey string

	if existingKey := s.s3.GetObjectKeyFromLink(pet.ImageURL); existingKey != "" {
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "pets", storage.AllowImage...)
	}
	if err != nil {
		return domain.PetResponse{}, err
	}

	pet.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.petRepository.UpdatePet(ctx, pet); err != nil {
		return domain.PetResponse{}, err
	}
	return s.toPetResponse(pet), nil
}

func (s *petService) findPet(ctx context.Context, id string) (*entities.Pet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	pet, err := s.petRepository.GetPetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

func (s *petService) toPetResponse(p *entities.Pet) domain.PetResponse {
	return domain.PetResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		BirthDate:  p.BirthDate,
		Age:        CalculateAge(p.BirthDate, s.now()),
		Gender:     p.Gender,
		Breed:      p.Breed,
		Weight:     p.Weight,
		HealthTags: decodeHealthTags(p.HealthTags),
		HealthDesc: p.HealthDesc,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
	}
}

// CalculateAge renders the age on today as "N歲 M個月", or "M個月" under a
// year. Years count 365 days and months 30.
func CalculateAge(birthDate *time.Time, today time.Time) string {
	if birthDate == nil {
		return "未知"
	}

	from := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		days = 0
	}

	years := days / 365
	months := (days % 365) / 30
	if years > 0 {
		return fmt.Sprintf("%d歲 %d個月", years, months)
	}
	return fmt.Sprintf("%d個月", months)
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return &t, nil
}

func encodeHealthTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	for _, tag := range tags {
		if !isHealthOption(tag) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidHealthTag, tag)
		}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func decodeHealthTags(raw datatypes.JSON) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}

func isHealthOption(tag string) bool {
	for _, opt := range domain.HealthOptions {
		if opt == tag {
			return true
		}
	}
	return false
}
