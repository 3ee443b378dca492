package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AnalyzeRequest struct {
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type FraudFlagsDTO struct {
	DuplicateImage bool `json:"duplicate_image"`
	IsLikelyFake   bool `json:"is_likely_fake"`
	MissingHazard  bool `json:"missing_hazard"`
}

type AnalyzeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Category          string        `json:"category"`
		Severity          string        `json:"severity"`
		RecommendedAgency string        `json:"recommended_agency"`
		Confidence        float64       `json:"confidence"`
		Summary           string        `json:"summary"`
		FraudFlags        FraudFlagsDTO `json:"fraud_flags"`
	} `json:"data"`
}
