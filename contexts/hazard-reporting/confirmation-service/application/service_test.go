package application

import (
	"context"
	"errors"
	"testing"

	pointsapp "belli/contexts/community-experience/points-engine/application"
	"belli/contexts/hazard-reporting/confirmation-service/domain/entities"
	domainerrors "belli/contexts/hazard-reporting/confirmation-service/domain/errors"
	"belli/contexts/hazard-reporting/confirmation-service/ports"
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

func newConfirmationFixture() (Service, pointsapp.Service, *memory.Store) {
	store := memory.NewStore(memory.DefaultFixtures())
	points := pointsapp.Service{Users: store, Clock: store, IDGen: store}
	confirmations := Service{
		Confirmations: store,
		Awards:        testAwarder{points: points},
		Clock:         store,
		IDGen:         store,
	}
	return confirmations, points, store
}

func TestSubmitOfficialReport(t *testing.T) {
	confirmations, points, _ := newConfirmationFixture()
	before, _ := points.GetUser(context.Background(), "scout-9")

	confirmation, err := confirmations.SubmitConfirmation(context.Background(), ports.ConfirmationInput{
		UserID:     "scout-9",
		PinID:      "pin-1",
		FileURL:    "https://example.com/report.pdf",
		ReportText: "311 Case#8841 acknowledged by the agency",
		ReportType: entities.ReportTypeOfficial,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if confirmation.ConfirmationID == "" {
		t.Fatalf("expected generated confirmation id")
	}
	if !confirmation.IsValid {
		t.Fatalf("expected agency markers to validate the report")
	}

	after, _ := points.GetUser(context.Background(), "scout-9")
	if after.Points != before.Points+40 {
		t.Fatalf("official report must award 40 points, got %d -> %d", before.Points, after.Points)
	}
	if after.SubmittedReports != before.SubmittedReports+1 {
		t.Fatalf("expected submitted reports counter to advance")
	}
}

func TestSubmitCommunityConfirmation(t *testing.T) {
	confirmations, points, _ := newConfirmationFixture()
	before, _ := points.GetUser(context.Background(), "scout-12")

	confirmation, err := confirmations.SubmitConfirmation(context.Background(), ports.ConfirmationInput{
		UserID:     "scout-12",
		PinID:      "pin-2",
		ReportText: "Walked past today, still flooded",
		ReportType: entities.ReportTypeConfirmation,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if confirmation.IsValid {
		t.Fatalf("text without agency markers must not validate")
	}

	after, _ := points.GetUser(context.Background(), "scout-12")
	if after.Points != before.Points+80 {
		t.Fatalf("confirmation must award 80 points, got %d -> %d", before.Points, after.Points)
	}
}

func TestSubmitConfirmationValidation(t *testing.T) {
	confirmations, _, _ := newConfirmationFixture()

	cases := []ports.ConfirmationInput{
		{UserID: "", PinID: "pin-1", ReportType: entities.ReportTypeOfficial},
		{UserID: "scout-9", PinID: "", ReportType: entities.ReportTypeOfficial},
		{UserID: "scout-9", PinID: "pin-1", ReportType: "newsletter"},
	}
	for i, input := range cases {
		if _, err := confirmations.SubmitConfirmation(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidConfirmationInput) {
			t.Fatalf("case %d: expected ErrInvalidConfirmationInput, got %v", i, err)
		}
	}
}

func TestSubmitConfirmationUnknownUser(t *testing.T) {
	confirmations, _, store := newConfirmationFixture()

	_, err := confirmations.SubmitConfirmation(context.Background(), ports.ConfirmationInput{
		UserID:     "ghost",
		PinID:      "pin-1",
		ReportType: entities.ReportTypeOfficial,
	})
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	stored, _ := store.ListConfirmations(context.Background(), "")
	if len(stored) != 0 {
		t.Fatalf("failed submission must not be stored, got %d", len(stored))
	}
}

func TestListConfirmationsFilter(t *testing.T) {
	confirmations, _, _ := newConfirmationFixture()

	inputs := []ports.ConfirmationInput{
		{UserID: "scout-9", PinID: "pin-1", ReportText: "agency follow up", ReportType: entities.ReportTypeOfficial},
		{UserID: "scout-12", PinID: "pin-1", ReportText: "saw it too", ReportType: entities.ReportTypeConfirmation},
		{UserID: "guardian-1", PinID: "pin-2", ReportText: "still here", ReportType: entities.ReportTypeConfirmation},
	}
	for _, input := range inputs {
		if _, err := confirmations.SubmitConfirmation(context.Background(), input); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	all, err := confirmations.ListConfirmations(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 confirmations, got %d", len(all))
	}

	forPin, err := confirmations.ListConfirmations(context.Background(), "pin-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(forPin) != 2 {
		t.Fatalf("expected 2 confirmations for pin-1, got %d", len(forPin))
	}
	for _, confirmation := range forPin {
		if confirmation.PinID != "pin-1" {
			t.Fatalf("filter leaked %s", confirmation.PinID)
		}
	}
}

func TestContainsAgencyMarker(t *testing.T) {
	cases := []struct {
		text  string
		valid bool
	}{
		{"311 service request opened", true},
		{"see CASE#99", true},
		{"the Agency responded", true},
		{"just a note", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := containsAgencyMarker(tc.text); got != tc.valid {
			t.Fatalf("%q: expected %v, got %v", tc.text, tc.valid, got)
		}
	}
}
