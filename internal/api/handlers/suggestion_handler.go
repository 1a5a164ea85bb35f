package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/suggestion"
)

type (
	SuggestionHandler interface {
		SuggestMeal(c *fiber.Ctx) error
		SuggestWeeklyMenu(c *fiber.Ctx) error
		SuggestShoppingList(c *fiber.Ctx) error
	}

	suggestionHandler struct {
		suggestionService suggestion.SuggestionService
	}
)

func NewSuggestionHandler(suggestionService suggestion.SuggestionService) SuggestionHandler {
	return &suggestionHandler{suggestionService: suggestionService}
}

// Degraded suggestions still return 200; the response carries a
// degraded flag so clients can tell a fallback from a real answer.
func (h *suggestionHandler) SuggestMeal(c *fiber.Ctx) error {
	res, err := h.suggestionService.SuggestMeal(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSuggestion, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestion)
}

func (h *suggestionHandler) SuggestWeeklyMenu(c *fiber.Ctx) error {
	res, err := h.suggestionService.SuggestWeeklyMenu(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSuggestion, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestion)
}

func (h *suggestionHandler) SuggestShoppingList(c *fiber.Ctx) error {
	res, err := h.suggestionService.SuggestShoppingList(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSuggestion, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSuggestion)
}
