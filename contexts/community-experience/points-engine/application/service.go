package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"belli/contexts/community-experience/points-engine/domain/entities"
	domainerrors "belli/contexts/community-experience/points-engine/domain/errors"
	"belli/contexts/community-experience/points-engine/ports"
)

var pointRules = map[string]int{
	entities.ActionCreatePin:          10,
	entities.ActionVerifyPin:          10,
	entities.ActionSubmitReport:       40,
	entities.ActionUploadConfirmation: 80,
	entities.ActionMarkResolved:       15,
}

var levels = []struct {
	Label     string
	Threshold int
}{
	{"Scout", 0},
	{"Ranger", 100},
	{"Inspector", 200},
	{"Guardian", 400},
}

var trustIncrements = map[string]float64{
	entities.ActionCreatePin:          0.5,
	entities.ActionVerifyPin:          1,
	entities.ActionSubmitReport:       1.5,
	entities.ActionUploadConfirmation: 2,
	entities.ActionMarkResolved:       1,
}

const (
	defaultTrustIncrement = 0.5
	maxTrustScore         = 100
	initialTrustScore     = 50
)

type badgeRule struct {
	Label       string
	Requirement func(entities.User) bool
}

var badgeRules = []badgeRule{
	{"Rapid Responder", func(u entities.User) bool { return u.CreatedPins >= 5 }},
	{"Top Verifier", func(u entities.User) bool { return u.VerifiedPins >= 10 }},
	{"Data Steward", func(u entities.User) bool { return u.SubmittedReports >= 3 }},
	{"Guardian", func(u entities.User) bool { return u.Points >= 400 }},
	{"Neighborhood Watch", func(u entities.User) bool { return u.Points >= 150 }},
}

// Service is the points/reputation engine: one award per qualifying action,
// derived levels and badges, bounded trust score, leaderboard projection.
type Service struct {
	Users  ports.UserRepository
	Cache  ports.LeaderboardCache
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// PointRules returns the static action to point-amount table.
func (s Service) PointRules() map[string]int {
	rules := make(map[string]int, len(pointRules))
	for action, amount := range pointRules {
		rules[action] = amount
	}
	return rules
}

// ResolveLevel picks the highest threshold not exceeding xp.
func ResolveLevel(xp int) string {
	label := levels[0].Label
	for _, level := range levels {
		if xp >= level.Threshold {
			label = level.Label
		}
	}
	return label
}

// ComputeBadges derives the full badge set from current counters and points.
// The whole set is recomputed on every award; badges are never individually
// added or removed.
func ComputeBadges(user entities.User) []string {
	badges := make([]string, 0, len(badgeRules))
	for _, rule := range badgeRules {
		if rule.Requirement(user) {
			badges = append(badges, rule.Label)
		}
	}
	return badges
}

func (s Service) AwardPoints(ctx context.Context, userID string, action string) (entities.PointsAward, error) {
	logger := resolveLogger(s.Logger)
	userID = strings.TrimSpace(userID)
	action = strings.TrimSpace(action)
	if userID == "" || action == "" {
		return entities.PointsAward{}, domainerrors.ErrInvalidUserInput
	}

	amount := pointRules[action]
	user, err := s.Users.UpdateUser(ctx, userID, func(user *entities.User) error {
		user.Points += amount
		user.XP += amount
		user.Level = ResolveLevel(user.XP)

		increment, ok := trustIncrements[action]
		if !ok {
			increment = defaultTrustIncrement
		}
		user.TrustScore += increment
		if user.TrustScore > maxTrustScore {
			user.TrustScore = maxTrustScore
		}

		switch action {
		case entities.ActionCreatePin:
			user.CreatedPins++
		case entities.ActionVerifyPin:
			user.VerifiedPins++
		case entities.ActionSubmitReport, entities.ActionUploadConfirmation:
			user.SubmittedReports++
		case entities.ActionMarkResolved:
			user.ResolvedPins++
		}

		user.Badges = ComputeBadges(*user)
		return nil
	})
	if err != nil {
		return entities.PointsAward{}, err
	}
	s.invalidateLeaderboard(ctx)

	logger.Info("points awarded",
		"event", "points_awarded",
		"module", "community-experience/points-engine",
		"layer", "application",
		"user_id", user.UserID,
		"action", action,
		"amount", amount,
		"total_points", user.Points,
		"level", user.Level,
	)
	return entities.PointsAward{
		Action:      action,
		Amount:      amount,
		TotalPoints: user.Points,
		Level:       user.Level,
	}, nil
}

// UserExists backs the existence precondition other engines check before
// mutating their own state.
func (s Service) UserExists(ctx context.Context, userID string) (bool, error) {
	_, err := s.Users.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s Service) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return s.Users.GetUser(ctx, strings.TrimSpace(userID))
}

func (s Service) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.Users.ListUsers(ctx)
}

func (s Service) RegisterUser(ctx context.Context, input ports.RegisterUserInput) (entities.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}

	userID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	user := entities.User{
		UserID:     userID,
		Name:       name,
		Email:      email,
		Avatar:     strings.TrimSpace(input.Avatar),
		TrustScore: initialTrustScore,
		Level:      ResolveLevel(0),
		Badges:     []string{},
		CreatedAt:  s.Clock.Now().UTC(),
	}
	created, err := s.Users.CreateUser(ctx, user)
	if err != nil {
		return entities.User{}, err
	}
	s.invalidateLeaderboard(ctx)

	resolveLogger(s.Logger).Info("user registered",
		"event", "user_registered",
		"module", "community-experience/points-engine",
		"layer", "application",
		"user_id", created.UserID,
	)
	return created, nil
}

// Leaderboard projects all users ordered by points descending. Ties are
// stable by user id.
func (s Service) Leaderboard(ctx context.Context) ([]entities.LeaderboardEntry, error) {
	if s.Cache != nil {
		if entries, ok, err := s.Cache.Get(ctx); err == nil && ok {
			return entries, nil
		}
	}

	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]entities.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, entities.LeaderboardEntry{
			UserID: user.UserID,
			Name:   user.Name,
			Points: user.Points,
			Level:  user.Level,
			Badges: append([]string(nil), user.Badges...),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points == entries[j].Points {
			return entries[i].UserID < entries[j].UserID
		}
		return entries[i].Points > entries[j].Points
	})

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, entries); err != nil {
			resolveLogger(s.Logger).Warn("leaderboard cache write failed",
				"event", "leaderboard_cache_put_failed",
				"module", "community-experience/points-engine",
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	return entries, nil
}

func (s Service) invalidateLeaderboard(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		resolveLogger(s.Logger).Warn("leaderboard cache invalidation failed",
			"event", "leaderboard_cache_invalidate_failed",
			"module", "community-experience/points-engine",
			"layer", "application",
			"error", err.Error(),
		)
	}
}
