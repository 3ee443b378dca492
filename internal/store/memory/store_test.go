package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	pointserrors "belli/contexts/community-experience/points-engine/domain/errors"
	pinentities "belli/contexts/hazard-reporting/pin-service/domain/entities"
	pinerrors "belli/contexts/hazard-reporting/pin-service/domain/errors"
)

func TestDefaultFixturesSeed(t *testing.T) {
	store := NewStore(DefaultFixtures())

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 seeded users, got %d", len(users))
	}

	pins, err := store.ListPins(context.Background())
	if err != nil {
		t.Fatalf("list pins failed: %v", err)
	}
	if len(pins) != 3 {
		t.Fatalf("expected 3 seeded pins, got %d", len(pins))
	}
	// Listing is oldest first.
	if pins[0].PinID != "pin-3" || pins[1].PinID != "pin-2" || pins[2].PinID != "pin-1" {
		t.Fatalf("unexpected pin order: %s, %s, %s", pins[0].PinID, pins[1].PinID, pins[2].PinID)
	}

	for _, pin := range pins {
		if pin.HashedImage == "" {
			t.Fatalf("seeded pin %s is missing its photo hash", pin.PinID)
		}
		found, err := store.HasImageHash(context.Background(), pin.HashedImage)
		if err != nil || !found {
			t.Fatalf("expected hash of %s to be indexed, got %v %v", pin.PinID, found, err)
		}
	}
	if found, _ := store.HasImageHash(context.Background(), store.HashString("https://example.com/unseen.jpg")); found {
		t.Fatalf("unexpected hash hit for an unseen photo")
	}
}

func TestEmptyFixtures(t *testing.T) {
	store := NewStore(Fixtures{})

	users, _ := store.ListUsers(context.Background())
	pins, _ := store.ListPins(context.Background())
	if len(users) != 0 || len(pins) != 0 {
		t.Fatalf("expected empty store, got %d users and %d pins", len(users), len(pins))
	}
	if _, err := store.GetUser(context.Background(), "guardian-1"); !errors.Is(err, pointserrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := store.GetPin(context.Background(), "pin-1"); !errors.Is(err, pinerrors.ErrPinNotFound) {
		t.Fatalf("expected ErrPinNotFound, got %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	store := NewStore(DefaultFixtures())

	user, err := store.GetUser(context.Background(), "guardian-1")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if len(user.Badges) == 0 {
		t.Fatalf("fixture user should carry badges")
	}
	user.Badges[0] = "Loiterer"
	user.Points = -1

	reread, _ := store.GetUser(context.Background(), "guardian-1")
	if reread.Badges[0] == "Loiterer" || reread.Points == -1 {
		t.Fatalf("stored user mutated through a returned copy")
	}

	pin, err := store.GetPin(context.Background(), "pin-1")
	if err != nil {
		t.Fatalf("get pin failed: %v", err)
	}
	stamp := time.Now().UTC()
	pin.LastVerifiedAt = &stamp
	pin.Attachments = append(pin.Attachments, "tampered")

	repin, _ := store.GetPin(context.Background(), "pin-1")
	if repin.LastVerifiedAt != nil || len(repin.Attachments) != 0 {
		t.Fatalf("stored pin mutated through a returned copy")
	}
}

func TestVoteLedgerUniqueness(t *testing.T) {
	store := NewStore(DefaultFixtures())

	vote := pinentities.VerificationVote{
		VoteID:    "vote-1",
		PinID:     "pin-1",
		UserID:    "scout-9",
		Vote:      pinentities.VoteValid,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AppendVote(context.Background(), vote); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	dup := vote
	dup.VoteID = "vote-2"
	dup.Vote = pinentities.VoteInvalid
	if err := store.AppendVote(context.Background(), dup); !errors.Is(err, pinerrors.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	voted, err := store.HasVote(context.Background(), "pin-1", "scout-9")
	if err != nil || !voted {
		t.Fatalf("expected recorded vote, got %v %v", voted, err)
	}
	if voted, _ := store.HasVote(context.Background(), "pin-1", "scout-12"); voted {
		t.Fatalf("unexpected vote for scout-12")
	}

	votes, err := store.ListVotesForPin(context.Background(), "pin-1")
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 1 || votes[0].VoteID != "vote-1" {
		t.Fatalf("expected the single original vote, got %+v", votes)
	}
}

func TestHashStringIsStable(t *testing.T) {
	store := NewStore(Fixtures{})

	first := store.HashString("https://example.com/photo.jpg")
	second := store.HashString("https://example.com/photo.jpg")
	if first == "" || first != second {
		t.Fatalf("expected stable hash, got %q and %q", first, second)
	}
	if store.HashString("different input") == first {
		t.Fatalf("distinct inputs must not collide")
	}
}
