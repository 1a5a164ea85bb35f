package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pantry-planner/domain"
)

var clientInputErrors = []error{
	domain.ErrInvalidID,
	domain.ErrInvalidPurchaseDate,
	domain.ErrInvalidExpiryDate,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidPrice,
	domain.ErrInvalidAmount,
	domain.ErrEmptyReceipt,
	domain.ErrMissingItemName,
	domain.ErrMissingName,
}

var notFoundErrors = []error{
	domain.ErrItemNotFound,
	domain.ErrReceiptNotFound,
}

// statusForError maps domain errors onto HTTP statuses: client input
// problems are 400, missing records 404, anything else is a storage or
// internal failure.
func statusForError(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fiber.StatusNotFound
		}
	}
	for _, target := range clientInputErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}
