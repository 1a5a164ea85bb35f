package domain

import (
	"errors"
)

var (
	MessageSuccessSuggestion = "suggestion generated successfully"
	MessageFailedSuggestion  = "failed to generate suggestion"

	ErrSuggestionFailed = errors.New("suggestion generation failed")
)

type (
	// SuggestionResponse carries generated text, or a parsed structured
	// value when the model returned valid JSON. Degraded marks fallback
	// output produced after an external-service failure.
	SuggestionResponse struct {
		Suggestion   interface{} `json:"suggestion"`
		IsStructured bool        `json:"is_json"`
		Degraded     bool        `json:"degraded,omitempty"`
	}
)
