package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitConfirmationRequest struct {
	UserID     string `json:"user_id"`
	PinID      string `json:"pin_id"`
	FileURL    string `json:"file_url,omitempty"`
	ReportText string `json:"report_text,omitempty"`
	ReportType string `json:"report_type"`
}

type ConfirmationDTO struct {
	ConfirmationID string `json:"confirmation_id"`
	PinID          string `json:"pin_id"`
	UserID         string `json:"user_id"`
	FileURL        string `json:"file_url,omitempty"`
	ExtractedText  string `json:"extracted_text,omitempty"`
	IsValid        bool   `json:"is_valid"`
	ReportType     string `json:"report_type"`
	CreatedAt      string `json:"created_at"`
}

type ConfirmationResponse struct {
	Status string          `json:"status"`
	Data   ConfirmationDTO `json:"data"`
}

type ConfirmationListResponse struct {
	Status string            `json:"status"`
	Data   []ConfirmationDTO `json:"data"`
}
