package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pointsengine "belli/contexts/community-experience/points-engine"
	pointsapp "belli/contexts/community-experience/points-engine/application"
	pointshttp "belli/contexts/community-experience/points-engine/transport/http"
	classifierservice "belli/contexts/hazard-reporting/classifier-service"
	classifierhttp "belli/contexts/hazard-reporting/classifier-service/transport/http"
	confirmationservice "belli/contexts/hazard-reporting/confirmation-service"
	confirmhttp "belli/contexts/hazard-reporting/confirmation-service/transport/http"
	pinservice "belli/contexts/hazard-reporting/pin-service"
	pinhttp "belli/contexts/hazard-reporting/pin-service/transport/http"
	"belli/internal/store/memory"
)

type testAwarder struct {
	points pointsapp.Service
}

func (a testAwarder) UserExists(ctx context.Context, userID string) (bool, error) {
	return a.points.UserExists(ctx, userID)
}

func (a testAwarder) AwardPoints(ctx context.Context, userID string, action string) error {
	_, err := a.points.AwardPoints(ctx, userID, action)
	return err
}

func newTestServer() *Server {
	store := memory.NewStore(memory.DefaultFixtures())

	points := pointsengine.NewModule(pointsengine.Dependencies{
		Users: store,
		Clock: store,
		IDGen: store,
	})
	awards := testAwarder{points: points.Service}

	pins := pinservice.NewModule(pinservice.Dependencies{
		Pins:   store,
		Votes:  store,
		Awards: awards,
		Hasher: store,
		Clock:  store,
		IDGen:  store,
	})
	classifier := classifierservice.NewModule(classifierservice.Dependencies{
		Images: store,
		Hasher: store,
	})
	confirmations := confirmationservice.NewModule(confirmationservice.Dependencies{
		Confirmations: store,
		Awards:        awards,
		Clock:         store,
		IDGen:         store,
	})

	return New(pins, classifier, confirmations, points, nil, ":0")
}

func doRequest(t *testing.T, server *Server, method string, path string, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	server.mux.ServeHTTP(recorder, req)
	return recorder
}

func decodeInto(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func TestCreatePinEndToEnd(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodPost, "/api/v1/pins", "citizen-token", pinhttp.CreatePinRequest{
		UserID:      "scout-12",
		Description: "Giant pothole right before the crosswalk",
		Severity:    "low",
		Location:    pinhttp.LocationDTO{Lat: 40.71, Lng: -73.98, Address: "Delancey St"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created pinhttp.PinResponse
	decodeInto(t, resp, &created)
	if created.Data.Category != "pothole" || created.Data.Severity != "high" {
		t.Fatalf("expected analyzer routing to win, got %s/%s", created.Data.Category, created.Data.Severity)
	}
	if created.Data.RecommendedAgency != "DOT Street Maintenance" {
		t.Fatalf("unexpected agency: %s", created.Data.RecommendedAgency)
	}
	if created.Data.AIConfidence != 0.82 {
		t.Fatalf("expected confidence 0.82, got %f", created.Data.AIConfidence)
	}
	if created.Data.Status != "open" {
		t.Fatalf("expected open status, got %s", created.Data.Status)
	}

	list := doRequest(t, server, http.MethodGet, "/api/v1/pins", "", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	var pins pinhttp.PinListResponse
	decodeInto(t, list, &pins)
	if len(pins.Data) != 4 {
		t.Fatalf("expected 4 pins after creation, got %d", len(pins.Data))
	}

	stats := doRequest(t, server, http.MethodGet, "/api/v1/users/scout-12/stats", "", nil)
	var user pointshttp.UserResponse
	decodeInto(t, stats, &user)
	if user.Data.Points != 130 {
		t.Fatalf("expected 130 points after the create award, got %d", user.Data.Points)
	}
	if user.Data.CreatedPins != 4 {
		t.Fatalf("expected created pins 4, got %d", user.Data.CreatedPins)
	}
}

func TestMutatingRoutesRequireBearerToken(t *testing.T) {
	server := newTestServer()

	paths := []string{
		"/api/v1/pins",
		"/api/v1/verifications",
		"/api/v1/pins/pin-1/resolve",
		"/api/v1/confirmations",
		"/api/v1/points/award",
	}
	for _, path := range paths {
		resp := doRequest(t, server, http.MethodPost, path, "", map[string]string{})
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.Code)
		}
	}

	// Malformed schemes are rejected the same way.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pins", bytes.NewBufferString("{}"))
	req.Header.Set("Authorization", "Basic abc123")
	recorder := httptest.NewRecorder()
	server.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", recorder.Code)
	}
}

func TestVerificationDuplicateConflict(t *testing.T) {
	server := newTestServer()

	vote := pinhttp.VerificationRequest{UserID: "scout-9", PinID: "pin-1", Vote: "valid"}
	first := doRequest(t, server, http.MethodPost, "/api/v1/verifications", "citizen-token", vote)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", first.Code, first.Body.String())
	}
	var updated pinhttp.PinResponse
	decodeInto(t, first, &updated)
	if updated.Data.VerificationStats.Upvotes != 4 || updated.Data.VerificationStats.Score != 4 {
		t.Fatalf("unexpected tally: %+v", updated.Data.VerificationStats)
	}
	if updated.Data.LastVerifiedAt == "" {
		t.Fatalf("expected last_verified_at to be set")
	}

	second := doRequest(t, server, http.MethodPost, "/api/v1/verifications", "citizen-token", vote)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate vote, got %d", second.Code)
	}
	var conflict pinhttp.ErrorResponse
	decodeInto(t, second, &conflict)
	if conflict.Code != "duplicate_vote" {
		t.Fatalf("expected duplicate_vote error code, got %s", conflict.Code)
	}
}

func TestResolvePin(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodPost, "/api/v1/pins/pin-2/resolve", "citizen-token", pinhttp.ResolvePinRequest{UserID: "guardian-1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var resolved pinhttp.PinResponse
	decodeInto(t, resp, &resolved)
	if resolved.Data.Status != "resolved" {
		t.Fatalf("expected resolved status, got %s", resolved.Data.Status)
	}

	missing := doRequest(t, server, http.MethodPost, "/api/v1/pins/no-such-pin/resolve", "citizen-token", pinhttp.ResolvePinRequest{UserID: "guardian-1"})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}

func TestGetPinNotFound(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodGet, "/api/v1/pins/no-such-pin", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodPost, "/api/v1/ai/analyze", "", classifierhttp.AnalyzeRequest{
		Description: "Trash bags ripped open all over the corner",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var analysis classifierhttp.AnalyzeResponse
	decodeInto(t, resp, &analysis)
	if analysis.Data.Category != "sanitation" || analysis.Data.RecommendedAgency != "DSNY" {
		t.Fatalf("unexpected routing: %s/%s", analysis.Data.Category, analysis.Data.RecommendedAgency)
	}
	if analysis.Data.Summary == "" {
		t.Fatalf("expected a summary line")
	}

	empty := doRequest(t, server, http.MethodPost, "/api/v1/ai/analyze", "", classifierhttp.AnalyzeRequest{})
	if empty.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty description, got %d", empty.Code)
	}
}

func TestPointsRoutes(t *testing.T) {
	server := newTestServer()

	rules := doRequest(t, server, http.MethodGet, "/api/v1/points/rules", "", nil)
	if rules.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rules.Code)
	}
	var table pointshttp.PointRulesResponse
	decodeInto(t, rules, &table)
	if len(table.Data) != 5 || table.Data["upload_confirmation"] != 80 {
		t.Fatalf("unexpected rules table: %+v", table.Data)
	}

	award := doRequest(t, server, http.MethodPost, "/api/v1/points/award", "ops-token", pointshttp.AwardPointsRequest{
		UserID: "guardian-1",
		Action: "mark_resolved",
	})
	if award.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", award.Code, award.Body.String())
	}
	var awarded pointshttp.AwardPointsResponse
	decodeInto(t, award, &awarded)
	if awarded.Data.Amount != 15 || awarded.Data.TotalPoints != 255 {
		t.Fatalf("unexpected award payload: %+v", awarded.Data)
	}

	ghost := doRequest(t, server, http.MethodPost, "/api/v1/points/award", "ops-token", pointshttp.AwardPointsRequest{
		UserID: "ghost",
		Action: "create_pin",
	})
	if ghost.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", ghost.Code)
	}

	board := doRequest(t, server, http.MethodGet, "/api/v1/leaderboard", "", nil)
	var leaderboard pointshttp.LeaderboardResponse
	decodeInto(t, board, &leaderboard)
	if len(leaderboard.Data) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(leaderboard.Data))
	}
	if leaderboard.Data[0].UserID != "guardian-1" || leaderboard.Data[0].Points != 255 {
		t.Fatalf("unexpected leader: %+v", leaderboard.Data[0])
	}
}

func TestRegisterUserRoute(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodPost, "/api/v1/users", "", pointshttp.RegisterUserRequest{
		Name:  "Noor Haddad",
		Email: "noor@belli.city",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created pointshttp.UserResponse
	decodeInto(t, resp, &created)
	if created.Data.UserID == "" || created.Data.Level != "Scout" {
		t.Fatalf("unexpected new user: %+v", created.Data)
	}
	if created.Data.TrustScore != 50 {
		t.Fatalf("expected starting trust 50, got %f", created.Data.TrustScore)
	}

	list := doRequest(t, server, http.MethodGet, "/api/v1/users", "", nil)
	var users pointshttp.UserListResponse
	decodeInto(t, list, &users)
	if len(users.Data) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users.Data))
	}

	invalid := doRequest(t, server, http.MethodPost, "/api/v1/users", "", pointshttp.RegisterUserRequest{Name: "No Email"})
	if invalid.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", invalid.Code)
	}
}

func TestConfirmationRoutes(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodPost, "/api/v1/confirmations", "citizen-token", confirmhttp.SubmitConfirmationRequest{
		UserID:     "scout-9",
		PinID:      "pin-1",
		ReportText: "311 Case#4521 closed as fixed",
		ReportType: "official-report",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created confirmhttp.ConfirmationResponse
	decodeInto(t, resp, &created)
	if !created.Data.IsValid {
		t.Fatalf("expected agency markers to validate the report")
	}

	list := doRequest(t, server, http.MethodGet, "/api/v1/confirmations?pin_id=pin-1", "", nil)
	var confirmations confirmhttp.ConfirmationListResponse
	decodeInto(t, list, &confirmations)
	if len(confirmations.Data) != 1 {
		t.Fatalf("expected 1 confirmation for pin-1, got %d", len(confirmations.Data))
	}

	other := doRequest(t, server, http.MethodGet, "/api/v1/confirmations?pin_id=pin-2", "", nil)
	var empty confirmhttp.ConfirmationListResponse
	decodeInto(t, other, &empty)
	if len(empty.Data) != 0 {
		t.Fatalf("expected no confirmations for pin-2, got %d", len(empty.Data))
	}
}

func TestDatasetRoute(t *testing.T) {
	server := newTestServer()

	resp := doRequest(t, server, http.MethodGet, "/api/v1/dataset", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var dataset pinhttp.DatasetResponse
	decodeInto(t, resp, &dataset)
	if len(dataset.Data) != 3 {
		t.Fatalf("expected 3 records, got %d", len(dataset.Data))
	}
	for _, record := range dataset.Data {
		if record.PinID == "" || record.Status == "" {
			t.Fatalf("incomplete dataset record: %+v", record)
		}
	}
}
