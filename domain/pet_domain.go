package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreatePet   = "pet created successfully"
	MessageSuccessUpdatePet   = "pet updated successfully"
	MessageSuccessGetPets     = "pets retrieved successfully"
	MessageSuccessArchivePet  = "pet archived successfully"
	MessageSuccessDeletePet   = "pet deleted successfully"
	MessageSuccessUploadPhoto = "pet photo updated successfully"

	MessageFailedCreatePet   = "failed to create pet"
	MessageFailedUpdatePet   = "failed to update pet"
	MessageFailedGetPets     = "failed to retrieve pets"
	MessageFailedDeletePet   = "failed to delete pet"
	MessageFailedUploadPhoto = "failed to upload pet photo"

	ErrPetNotFound           = errors.New("pet not found")
	ErrPetNameRequired       = errors.New("pet name is required")
	ErrDeletionReasonMissing = errors.New("pet has records, a deletion reason is required to archive it")
	ErrInvalidHealthTag      = errors.New("invalid health tag")
)

// HealthOptions are the selectable health conditions of a pet profile.
var HealthOptions = []string{"健康", "腎貓", "胰貓", "糖貓", "其它"}

type (
	CreatePetRequest struct {
		Name       string   `json:"name" validate:"required"`
		BirthDate  string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
		Gender     string   `json:"gender" validate:"omitempty,oneof=公 母"`
		Breed      string   `json:"breed"`
		Weight     float64  `json:"weight" validate:"gte=0"`
		HealthTags []string `json:"health_tags"`
		HealthDesc string   `json:"health_desc"`
	}

	UpdatePetRequest struct {
		Name       string   `json:"name" validate:"omitempty"`
		BirthDate  string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
		Gender     string   `json:"gender" validate:"omitempty,oneof=公 母"`
		Breed      string   `json:"breed"`
		Weight     *float64 `json:"weight" validate:"omitempty,gte=0"`
		HealthTags []string `json:"health_tags"`
		HealthDesc *string  `json:"health_desc"`
	}

	DeletePetRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=50"`
	}

	DeletePetResponse struct {
		ID       string `json:"id"`
		Archived bool   `json:"archived"`
	}

	UploadPetPhotoRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	PetResponse struct {
		ID         string     `json:"id"`
		Name       string     `json:"name"`
		BirthDate  *time.Time `json:"birth_date,omitempty"`
		Age        string     `json:"age"`
		Gender     string     `json:"gender"`
		Breed      string     `json:"breed"`
		Weight     float64    `json:"weight"`
		HealthTags []string   `json:"health_tags"`
		HealthDesc string     `json:"health_desc"`
		ImageURL   string     `json:"image_url,omitempty"`
		CreatedAt  time.Time  `json:"created_at"`
	}
)
