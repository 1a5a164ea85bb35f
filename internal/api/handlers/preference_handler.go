package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/preference"
)

type (
	PreferenceHandler interface {
		GetPreferences(c *fiber.Ctx) error
		SetPreferences(c *fiber.Ctx) error
	}

	preferenceHandler struct {
		preferenceService preference.PreferenceService
		validator         *validator.Validate
	}
)

func NewPreferenceHandler(preferenceService preference.PreferenceService, validator *validator.Validate) PreferenceHandler {
	return &preferenceHandler{
		preferenceService: preferenceService,
		validator:         validator,
	}
}

func (h *preferenceHandler) GetPreferences(c *fiber.Ctx) error {
	res, err := h.preferenceService.GetPreferences(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetPreferences, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPreferences)
}

func (h *preferenceHandler) SetPreferences(c *fiber.Ctx) error {
	req := new(domain.UpdatePreferencesRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetPreferences, err)
	}

	res, err := h.preferenceService.SetPreferences(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSetPreferences, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetPreferences)
}
