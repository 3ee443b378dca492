package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AwardPointsRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

type AwardPointsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Action      string `json:"action"`
		Amount      int    `json:"amount"`
		TotalPoints int    `json:"total_points"`
		Level       string `json:"level"`
	} `json:"data"`
}

type PointRulesResponse struct {
	Status string         `json:"status"`
	Data   map[string]int `json:"data"`
}

type RegisterUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type UserDTO struct {
	UserID           string   `json:"user_id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Avatar           string   `json:"avatar,omitempty"`
	Points           int      `json:"points"`
	XP               int      `json:"xp"`
	TrustScore       float64  `json:"trust_score"`
	Level            string   `json:"level"`
	Badges           []string `json:"badges"`
	CreatedPins      int      `json:"created_pins"`
	VerifiedPins     int      `json:"verified_pins"`
	SubmittedReports int      `json:"submitted_reports"`
	ResolvedPins     int      `json:"resolved_pins"`
}

type UserResponse struct {
	Status string  `json:"status"`
	Data   UserDTO `json:"data"`
}

type UserListResponse struct {
	Status string    `json:"status"`
	Data   []UserDTO `json:"data"`
}

type LeaderboardEntryDTO struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Points int      `json:"points"`
	Level  string   `json:"level"`
	Badges []string `json:"badges"`
}

type LeaderboardResponse struct {
	Status string                `json:"status"`
	Data   []LeaderboardEntryDTO `json:"data"`
}
