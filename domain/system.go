package domain

var (
	MessageSuccessUpdateConfig = "configuration updated"
	MessageSuccessTestDB       = "database connection succeeded"
	MessageSuccessTestOllama   = "ollama responded"
	MessageSuccessGetModels    = "models retrieved successfully"

	MessageFailedUpdateConfig = "failed to update configuration"
	MessageFailedTestDB       = "database connection failed"
	MessageFailedTestOllama   = "ollama is not responding"
	MessageFailedGetModels    = "failed to retrieve models"
)

type (
	// UpdateConfigRequest carries a partial configuration change. Set
	// fields replace their counterparts in a fresh snapshot; the active
	// configuration is swapped whole, never mutated in place.
	UpdateConfigRequest struct {
		DatabaseHost     *string `json:"database_host" validate:"omitempty"`
		DatabasePort     *string `json:"database_port" validate:"omitempty"`
		DatabaseName     *string `json:"database_name" validate:"omitempty"`
		DatabaseUser     *string `json:"database_user" validate:"omitempty"`
		DatabasePassword *string `json:"database_password" validate:"omitempty"`
		OllamaHost       *string `json:"ollama_host" validate:"omitempty"`
		OllamaModel      *string `json:"ollama_model" validate:"omitempty"`
	}

	ConfigResponse struct {
		DatabaseHost string `json:"database_host"`
		DatabasePort string `json:"database_port"`
		DatabaseName string `json:"database_name"`
		DatabaseUser string `json:"database_user"`
		OllamaHost   string `json:"ollama_host"`
		OllamaModel  string `json:"ollama_model"`
	}

	ModelInfo struct {
		Name     string `json:"name"`
		Size     int64  `json:"size"`
		Modified string `json:"modified"`
	}
)
