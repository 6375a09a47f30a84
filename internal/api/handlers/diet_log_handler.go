package handlers

import (
	"PetDiary/domain"
	"PetDiary/internal/api/presenters"
	"PetDiary/internal/utils/export"
	"PetDiary/pkg/dietlog"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DietLogHandler interface {
		RecordIntake(c *fiber.Ctx) error
		RecordLeftover(c *fiber.Ctx) error
		GetDailyLogs(c *fiber.Ctx) error
		LastMeal(c *fiber.Ctx) error
		DailyReport(c *fiber.Ctx) error
		ExportCSV(c *fiber.Ctx) error
		MailExport(c *fiber.Ctx) error
	}

	dietLogHandler struct {
		dietLogService dietlog.DietLogService
		validator      *validator.Validate
	}
)

func NewDietLogHandler(dietLogService dietlog.DietLogService, validator *validator.Validate) DietLogHandler {
	return &dietLogHandler{
		dietLogService: dietLogService,
		validator:      validator,
	}
}

func (h *dietLogHandler) RecordIntake(c *fiber.Ctx) error {
	req := new(domain.RecordIntakeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordIntake, err)
	}

	res, err := h.dietLogService.RecordIntake(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRecordIntake, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordIntake)
}

func (h *dietLogHandler) RecordLeftover(c *fiber.Ctx) error {
	req := new(domain.RecordLeftoverRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordLeftover, err)
	}

	res, err := h.dietLogService.RecordLeftover(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRecordLeftover, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordLeftover)
}

func (h *dietLogHandler) GetDailyLogs(c *fiber.Ctx) error {
	res, err := h.dietLogService.GetDailyLogs(c.UserContext(), c.Params("id"), c.Query("date"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLogs, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLogs)
}

func (h *dietLogHandler) LastMeal(c *fiber.Ctx) error {
	res, err := h.dietLogService.LastMeal(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLastMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLastMeal)
}

func (h *dietLogHandler) DailyReport(c *fiber.Ctx) error {
	res, err := h.dietLogService.DailyReport(c.UserContext(), c.Params("id"), c.Query("date"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetReport, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReport)
}

func (h *dietLogHandler) ExportCSV(c *fiber.Ctx) error {
	content, fileName, err := h.dietLogService.ExportCSV(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExport, err)
	}

	c.Set(fiber.HeaderContentType, export.ContentTypeCSV)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(fileName)))
	return c.Status(fiber.StatusOK).Send(content)
}

func (h *dietLogHandler) MailExport(c *fiber.Ctx) error {
	req := new(domain.MailExportRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExport, err)
	}

	if err := h.dietLogService.MailExport(c.UserContext(), c.Params("id"), *req); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMailExport)
}
