package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/receipt"
)

type (
	ReceiptHandler interface {
		IngestReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetReceiptDetail(c *fiber.Ctx) error
		UploadReceiptImage(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) IngestReceipt(c *fiber.Ctx) error {
	req := new(domain.IngestReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIngestReceipt, err)
	}

	res, err := h.receiptService.IngestReceipt(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedIngestReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessIngestReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}

	res, err := h.receiptService.GetReceipts(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) GetReceiptDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceiptDetail, domain.ErrInvalidID)
	}

	res, err := h.receiptService.GetReceiptDetail(c.Context(), id)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetReceiptDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceiptDetail)
}

func (h *receiptHandler) UploadReceiptImage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrInvalidID)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	url, err := h.receiptService.UploadReceiptImage(c.Context(), id, file)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
