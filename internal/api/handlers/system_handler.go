package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/internal/config"
	"pantry-planner/pkg/inventory"
	"pantry-planner/pkg/suggestion"
)

type (
	SystemHandler interface {
		Health(c *fiber.Ctx) error
		GetConfig(c *fiber.Ctx) error
		UpdateConfig(c *fiber.Ctx) error
		TestDB(c *fiber.Ctx) error
		TestOllama(c *fiber.Ctx) error
		GetOllamaModels(c *fiber.Ctx) error
		SendExpiryDigest(c *fiber.Ctx) error
	}

	systemHandler struct {
		cfg              *config.Store
		db               *gorm.DB
		ollama           suggestion.OllamaClient
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewSystemHandler(
	cfg *config.Store,
	db *gorm.DB,
	ollama suggestion.OllamaClient,
	inventoryService inventory.InventoryService,
	validator *validator.Validate,
) SystemHandler {
	return &systemHandler{
		cfg:              cfg,
		db:               db,
		ollama:           ollama,
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *systemHandler) Health(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{"status": "ok"}, fiber.StatusOK, "healthy")
}

// GetConfig returns the active snapshot with secrets redacted.
func (h *systemHandler) GetConfig(c *fiber.Ctx) error {
	snapshot := h.cfg.Current()

	res := domain.ConfigResponse{
		DatabaseHost: snapshot.DBHost,
		DatabasePort: snapshot.DBPort,
		DatabaseName: snapshot.DBName,
		DatabaseUser: snapshot.DBUser,
		OllamaHost:   snapshot.OllamaHost,
		OllamaModel:  snapshot.OllamaModel,
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, "configuration retrieved successfully")
}

// UpdateConfig builds a fresh snapshot from the active one plus the
// requested changes and swaps it in whole. Readers holding the old
// snapshot finish their operation against the old values.
func (h *systemHandler) UpdateConfig(c *fiber.Ctx) error {
	req := new(domain.UpdateConfigRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateConfig, err)
	}

	snapshot := h.cfg.Current()
	if req.DatabaseHost != nil {
		snapshot.DBHost = *req.DatabaseHost
	}
	if req.DatabasePort != nil {
		snapshot.DBPort = *req.DatabasePort
	}
	if req.DatabaseName != nil {
		snapshot.DBName = *req.DatabaseName
	}
	if req.DatabaseUser != nil {
		snapshot.DBUser = *req.DatabaseUser
	}
	if req.DatabasePassword != nil {
		snapshot.DBPassword = *req.DatabasePassword
	}
	if req.OllamaHost != nil {
		snapshot.OllamaHost = *req.OllamaHost
	}
	if req.OllamaModel != nil {
		snapshot.OllamaModel = *req.OllamaModel
	}
	h.cfg.Swap(snapshot)

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateConfig)
}

func (h *systemHandler) TestDB(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTestDB, err)
	}

	if err := sqlDB.PingContext(c.Context()); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTestDB, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessTestDB)
}

func (h *systemHandler) TestOllama(c *fiber.Ctx) error {
	if err := h.ollama.Ping(c.Context()); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTestOllama, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"model": h.cfg.Current().OllamaModel}, fiber.StatusOK, domain.MessageSuccessTestOllama)
}

func (h *systemHandler) GetOllamaModels(c *fiber.Ctx) error {
	models, err := h.ollama.ListModels(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetModels, err)
	}

	return presenters.SuccessResponse(c, models, fiber.StatusOK, domain.MessageSuccessGetModels)
}

func (h *systemHandler) SendExpiryDigest(c *fiber.Ctx) error {
	req := new(domain.ExpiryDigestRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendDigest, err)
	}

	count, err := h.inventoryService.SendExpiryDigest(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSendDigest, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"items_listed": count}, fiber.StatusOK, domain.MessageSuccessSendDigest)
}
