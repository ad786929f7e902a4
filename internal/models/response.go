package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ImageUploadResponse struct {
	ImageURL    string `json:"image_url"`
	TotalImages int    `json:"total_images"`
}

type ImageURLResponse struct {
	ImageURL string `json:"image_url"`
}

type ImageDeleteResponse struct {
	Message         string   `json:"message"`
	RemainingImages []string `json:"remaining_images"`
}

type CleanupResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
