package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/stats"
)

type (
	StatsHandler interface {
		GetStatistics(c *fiber.Ctx) error
	}

	statsHandler struct {
		statsService stats.StatsService
	}
)

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandler{statsService: statsService}
}

func (h *statsHandler) GetStatistics(c *fiber.Ctx) error {
	res, err := h.statsService.GetStatistics(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetStatistics, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStatistics)
}
