package domain

import (
	"errors"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"

	ErrInvalidID = errors.New("invalid id")
)
