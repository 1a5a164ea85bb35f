package domain

var (
	MessageSuccessGetPreferences = "preferences retrieved successfully"
	MessageSuccessSetPreferences = "preferences saved successfully"

	MessageFailedGetPreferences = "failed to retrieve preferences"
	MessageFailedSetPreferences = "failed to save preferences"
)

type (
	UpdatePreferencesRequest struct {
		Allergens        *string `json:"allergens" validate:"omitempty"`
		DietType         *string `json:"diet_type" validate:"omitempty"`
		LikedProducts    *string `json:"liked_products" validate:"omitempty"`
		DislikedProducts *string `json:"disliked_products" validate:"omitempty"`
	}

	PreferencesResponse struct {
		Allergens        string `json:"allergens"`
		DietType         string `json:"diet_type"`
		LikedProducts    string `json:"liked_products"`
		DislikedProducts string `json:"disliked_products"`
	}
)
