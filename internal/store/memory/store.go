// Package memory is the in-memory Entity Store: the single shared substrate
// holding users, pins, verification votes, and report confirmations. It
// satisfies every repository port of the hazard-reporting and
// community-experience services, plus their Clock and IDGenerator ports, so
// one store instance can back the whole process (and one fresh instance can
// back a single test).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	pointsentities "belli/contexts/community-experience/points-engine/domain/entities"
	pointserrors "belli/contexts/community-experience/points-engine/domain/errors"
	confirmentities "belli/contexts/hazard-reporting/confirmation-service/domain/entities"
	pinentities "belli/contexts/hazard-reporting/pin-service/domain/entities"
	pinerrors "belli/contexts/hazard-reporting/pin-service/domain/errors"
	"belli/internal/shared/contenthash"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users         map[string]pointsentities.User
	pins          map[string]pinentities.Pin
	votes         []pinentities.VerificationVote
	voteIndex     map[string]struct{}
	confirmations []confirmentities.ReportConfirmation

	hasher contenthash.SHA256
}

type Fixtures struct {
	Users []pointsentities.User
	Pins  []pinentities.Pin
}

func NewStore(fixtures Fixtures) *Store {
	s := &Store{
		users:     make(map[string]pointsentities.User, len(fixtures.Users)),
		pins:      make(map[string]pinentities.Pin, len(fixtures.Pins)),
		voteIndex: make(map[string]struct{}),
	}
	for _, user := range fixtures.Users {
		if strings.TrimSpace(user.UserID) == "" {
			continue
		}
		s.users[user.UserID] = cloneUser(user)
	}
	for _, pin := range fixtures.Pins {
		if strings.TrimSpace(pin.PinID) == "" {
			continue
		}
		s.pins[pin.PinID] = clonePin(pin)
	}
	return s
}

// HashString is the content fingerprint used for photo duplicate detection.
func (s *Store) HashString(value string) string {
	return s.hasher.HashString(value)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// --- users (points-engine ports.UserRepository) ---

func (s *Store) ListUsers(_ context.Context) ([]pointsentities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]pointsentities.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID < users[j].UserID
	})
	return users, nil
}

func (s *Store) GetUser(_ context.Context, userID string) (pointsentities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return pointsentities.User{}, pointserrors.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// UpdateUser holds the write lock across the whole read-modify-write cycle.
// Concurrent updates to the same user serialize instead of overwriting.
func (s *Store) UpdateUser(_ context.Context, userID string, apply func(*pointsentities.User) error) (pointsentities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(userID)
	current, ok := s.users[key]
	if !ok {
		return pointsentities.User{}, pointserrors.ErrUserNotFound
	}
	user := cloneUser(current)
	if err := apply(&user); err != nil {
		return pointsentities.User{}, err
	}
	s.users[key] = cloneUser(user)
	return user, nil
}

func (s *Store) CreateUser(_ context.Context, user pointsentities.User) (pointsentities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(user.UserID)
	if key == "" {
		return pointsentities.User{}, pointserrors.ErrInvalidUserInput
	}
	s.users[key] = cloneUser(user)
	return cloneUser(s.users[key]), nil
}

// --- pins (pin-service ports.PinRepository) ---

func (s *Store) ListPins(_ context.Context) ([]pinentities.Pin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pins := make([]pinentities.Pin, 0, len(s.pins))
	for _, pin := range s.pins {
		pins = append(pins, clonePin(pin))
	}
	sort.Slice(pins, func(i, j int) bool {
		if pins[i].CreatedAt.Equal(pins[j].CreatedAt) {
			return pins[i].PinID < pins[j].PinID
		}
		return pins[i].CreatedAt.Before(pins[j].CreatedAt)
	})
	return pins, nil
}

func (s *Store) GetPin(_ context.Context, pinID string) (pinentities.Pin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pin, ok := s.pins[strings.TrimSpace(pinID)]
	if !ok {
		return pinentities.Pin{}, pinerrors.ErrPinNotFound
	}
	return clonePin(pin), nil
}

func (s *Store) SavePin(_ context.Context, pin pinentities.Pin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(pin.PinID)
	if key == "" {
		return pinerrors.ErrInvalidPinInput
	}
	s.pins[key] = clonePin(pin)
	return nil
}

// UpdatePin holds the write lock across the whole read-modify-write cycle.
// Concurrent tallies against the same pin serialize instead of overwriting.
func (s *Store) UpdatePin(_ context.Context, pinID string, apply func(*pinentities.Pin) error) (pinentities.Pin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(pinID)
	current, ok := s.pins[key]
	if !ok {
		return pinentities.Pin{}, pinerrors.ErrPinNotFound
	}
	pin := clonePin(current)
	if err := apply(&pin); err != nil {
		return pinentities.Pin{}, err
	}
	s.pins[key] = clonePin(pin)
	return pin, nil
}

// HasImageHash serves the classifier's read-only duplicate-image lookup.
func (s *Store) HasImageHash(_ context.Context, hash string) (bool, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, pin := range s.pins {
		if pin.HashedImage != "" && pin.HashedImage == hash {
			return true, nil
		}
	}
	return false, nil
}

// --- votes (pin-service ports.VoteLedger) ---

func (s *Store) AppendVote(_ context.Context, vote pinentities.VerificationVote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey(vote.PinID, vote.UserID)
	if _, ok := s.voteIndex[key]; ok {
		return pinerrors.ErrDuplicateVote
	}
	s.voteIndex[key] = struct{}{}
	s.votes = append(s.votes, vote)
	return nil
}

func (s *Store) HasVote(_ context.Context, pinID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.voteIndex[voteKey(pinID, userID)]
	return ok, nil
}

func (s *Store) ListVotesForPin(_ context.Context, pinID string) ([]pinentities.VerificationVote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pinID = strings.TrimSpace(pinID)
	votes := make([]pinentities.VerificationVote, 0)
	for _, vote := range s.votes {
		if vote.PinID == pinID {
			votes = append(votes, vote)
		}
	}
	return votes, nil
}

// --- confirmations (confirmation-service ports.ConfirmationRepository) ---

func (s *Store) AppendConfirmation(_ context.Context, confirmation confirmentities.ReportConfirmation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.confirmations = append(s.confirmations, confirmation)
	return nil
}

func (s *Store) ListConfirmations(_ context.Context, pinID string) ([]confirmentities.ReportConfirmation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pinID = strings.TrimSpace(pinID)
	confirmations := make([]confirmentities.ReportConfirmation, 0, len(s.confirmations))
	for _, confirmation := range s.confirmations {
		if pinID == "" || confirmation.PinID == pinID {
			confirmations = append(confirmations, confirmation)
		}
	}
	return confirmations, nil
}

func voteKey(pinID string, userID string) string {
	return strings.TrimSpace(pinID) + "|" + strings.TrimSpace(userID)
}

func cloneUser(user pointsentities.User) pointsentities.User {
	clone := user
	clone.Badges = append([]string(nil), user.Badges...)
	return clone
}

func clonePin(pin pinentities.Pin) pinentities.Pin {
	clone := pin
	clone.Attachments = append([]string(nil), pin.Attachments...)
	if pin.LastVerifiedAt != nil {
		verifiedAt := *pin.LastVerifiedAt
		clone.LastVerifiedAt = &verifiedAt
	}
	return clone
}
