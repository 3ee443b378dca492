package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LocationDTO struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type VerificationStatsDTO struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Score     int `json:"score"`
}

type PinDTO struct {
	PinID             string               `json:"pin_id"`
	UserID            string               `json:"user_id"`
	Description       string               `json:"description"`
	Severity          string               `json:"severity"`
	Category          string               `json:"category"`
	RecommendedAgency string               `json:"recommended_agency"`
	Location          LocationDTO          `json:"location"`
	PhotoURL          string               `json:"photo_url,omitempty"`
	Status            string               `json:"status"`
	AIConfidence      float64              `json:"ai_confidence"`
	CreatedAt         string               `json:"created_at"`
	LastVerifiedAt    string               `json:"last_verified_at,omitempty"`
	VerificationStats VerificationStatsDTO `json:"verification_stats"`
	Attachments       []string             `json:"attachments"`
}

type CreatePinRequest struct {
	UserID            string      `json:"user_id"`
	Description       string      `json:"description"`
	Severity          string      `json:"severity"`
	Category          string      `json:"category,omitempty"`
	RecommendedAgency string      `json:"recommended_agency,omitempty"`
	Location          LocationDTO `json:"location"`
	PhotoURL          string      `json:"photo_url,omitempty"`
}

type PinResponse struct {
	Status string `json:"status"`
	Data   PinDTO `json:"data"`
}

type PinListResponse struct {
	Status string   `json:"status"`
	Data   []PinDTO `json:"data"`
}

type VerificationRequest struct {
	UserID  string `json:"user_id"`
	PinID   string `json:"pin_id"`
	Vote    string `json:"vote"`
	Comment string `json:"comment,omitempty"`
}

type ResolvePinRequest struct {
	UserID string `json:"user_id"`
}

type DatasetRecordDTO struct {
	PinID             string      `json:"pin_id"`
	Description       string      `json:"description"`
	Severity          string      `json:"severity"`
	Category          string      `json:"category"`
	RecommendedAgency string      `json:"recommended_agency"`
	Location          LocationDTO `json:"location"`
	Status            string      `json:"status"`
	VerificationScore int         `json:"verification_score"`
	CreatedAt         string      `json:"created_at"`
}

type DatasetResponse struct {
	Status string             `json:"status"`
	Data   []DatasetRecordDTO `json:"data"`
}
