package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/inventory"
)

type (
	InventoryHandler interface {
		CreateItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		GetItems(c *fiber.Ctx) error
		RecordConsumption(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		validator        *validator.Validate
	}
)

func NewInventoryHandler(inventoryService inventory.InventoryService, validator *validator.Validate) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		validator:        validator,
	}
}

func (h *inventoryHandler) CreateItem(c *fiber.Ctx) error {
	req := new(domain.CreateItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateItem, err)
	}

	res, err := h.inventoryService.CreateItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateItem)
}

func (h *inventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItem, domain.ErrInvalidID)
	}

	req := new(domain.UpdateItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItem, err)
	}

	res, err := h.inventoryService.UpdateItem(c.Context(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateItem)
}

func (h *inventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteItem, domain.ErrInvalidID)
	}

	if err := h.inventoryService.DeleteItem(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

func (h *inventoryHandler) GetItems(c *fiber.Ctx) error {
	includeUnavailable := c.Query("scope") == "all"

	res, err := h.inventoryService.GetItems(c.Context(), includeUnavailable)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetItems)
}

func (h *inventoryHandler) RecordConsumption(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsumption, domain.ErrInvalidID)
	}

	req := new(domain.ConsumeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConsumption, err)
	}

	res, err := h.inventoryService.RecordConsumption(c.Context(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedConsumption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConsumption)
}
