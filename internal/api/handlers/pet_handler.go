package handlers

import (
	"PetDiary/domain"
	"PetDiary/internal/api/presenters"
	"PetDiary/pkg/pet"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PetHandler interface {
		CreatePet(c *fiber.Ctx) error
		GetPets(c *fiber.Ctx) error
		GetPet(c *fiber.Ctx) error
		UpdatePet(c *fiber.Ctx) error
		DeletePet(c *fiber.Ctx) error
		UploadPhoto(c *fiber.Ctx) error
	}

	petHandler struct {
		petService pet.PetService
		validator  *validator.Validate
	}
)

func NewPetHandler(petService pet.PetService, validator *validator.Validate) PetHandler {
	return &petHandler{
		petService: petService,
		validator:  validator,
	}
}

func (h *petHandler) CreatePet(c *fiber.Ctx) error {
	req := new(domain.CreatePetRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePet, err)
	}

	res, err := h.petService.CreatePet(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreatePet, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePet)
}

func (h *petHandler) GetPets(c *fiber.Ctx) error {
	res, err := h.petService.GetPets(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPets, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPets)
}

func (h *petHandler) GetPet(c *fiber.Ctx) error {
	res, err := h.petService.GetPet(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPets, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPets)
}

func (h *petHandler) UpdatePet(c *fiber.Ctx) error {
	req := new(domain.UpdatePetRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePet, err)
	}

	res, err := h.petService.UpdatePet(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdatePet, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePet)
}

func (h *petHandler) DeletePet(c *fiber.Ctx) error {
	req := new(domain.DeletePetRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePet, err)
	}

	res, err := h.petService.DeletePet(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeletePet, err)
	}

	message := domain.MessageSuccessDeletePet
	if res.Archived {
		message = domain.MessageSuccessArchivePet
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, message)
}

func (h *petHandler) UploadPhoto(c *fiber.Ctx) error {
	req := new(domain.UploadPetPhotoRequest)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, err)
	}

	res, err := h.petService.UploadPhoto(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadPhoto, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadPhoto)
}
