package handlers

import (
	"PetDiary/domain"
	"PetDiary/internal/utils/mailing"
	"PetDiary/internal/utils/storage"
	"PetDiary/pkg/ledger"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	badRequestErrors = []error{
		domain.ErrParseUUID,
		domain.ErrInvalidDate,
		domain.ErrPetNameRequired,
		domain.ErrDeletionReasonMissing,
		domain.ErrInvalidHealthTag,
		domain.ErrFoodNameRequired,
		domain.ErrInvalidCalories,
		domain.ErrInvalidCategory,
		domain.ErrFoodNotInCategory,
		domain.ErrFoodNotInMenu,
		ledger.ErrInvalidQuantity,
		ledger.ErrUnknownUnit,
		ledger.ErrSignMismatch,
		storage.ErrFileTypeNotAllowed,
	}

	notFoundErrors = []error{
		domain.ErrPetNotFound,
		domain.ErrFoodNotFound,
		domain.ErrNoLogsToExport,
	}

	unavailableErrors = []error{
		ledger.ErrTotalsUnavailable,
		storage.ErrStorageDisabled,
		mailing.ErrMailNotConfigured,
	}
)

// statusFor maps service errors onto HTTP status codes. Anything not listed
// is a server fault.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs), isAny(err, badRequestErrors):
		return fiber.StatusBadRequest
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientHistory):
		return fiber.StatusUnprocessableEntity
	case isAny(err, unavailableErrors):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
