package httpadapter

import (
	"context"
	"log/slog"

	"belli/contexts/community-experience/points-engine/application"
	"belli/contexts/community-experience/points-engine/domain/entities"
	"belli/contexts/community-experience/points-engine/ports"
	httptransport "belli/contexts/community-experience/points-engine/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) AwardPointsHandler(ctx context.Context, req httptransport.AwardPointsRequest) (httptransport.AwardPointsResponse, error) {
	award, err := h.Service.AwardPoints(ctx, req.UserID, req.Action)
	if err != nil {
		return httptransport.AwardPointsResponse{}, err
	}
	resp := httptransport.AwardPointsResponse{Status: "success"}
	resp.Data.Action = award.Action
	resp.Data.Amount = award.Amount
	resp.Data.TotalPoints = award.TotalPoints
	resp.Data.Level = award.Level
	return resp, nil
}

func (h Handler) PointRulesHandler(_ context.Context) httptransport.PointRulesResponse {
	return httptransport.PointRulesResponse{
		Status: "success",
		Data:   h.Service.PointRules(),
	}
}

func (h Handler) RegisterUserHandler(ctx context.Context, req httptransport.RegisterUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.RegisterUser(ctx, ports.RegisterUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{Status: "success", Data: userToDTO(user)}, nil
}

func (h Handler) GetUserStatsHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.GetUser(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{Status: "success", Data: userToDTO(user)}, nil
}

func (h Handler) ListUsersHandler(ctx context.Context) (httptransport.UserListResponse, error) {
	users, err := h.Service.ListUsers(ctx)
	if err != nil {
		return httptransport.UserListResponse{}, err
	}
	resp := httptransport.UserListResponse{
		Status: "success",
		Data:   make([]httptransport.UserDTO, 0, len(users)),
	}
	for _, user := range users {
		resp.Data = append(resp.Data, userToDTO(user))
	}
	return resp, nil
}

func (h Handler) LeaderboardHandler(ctx context.Context) (httptransport.LeaderboardResponse, error) {
	entries, err := h.Service.Leaderboard(ctx)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}
	resp := httptransport.LeaderboardResponse{
		Status: "success",
		Data:   make([]httptransport.LeaderboardEntryDTO, 0, len(entries)),
	}
	for _, entry := range entries {
		badges := entry.Badges
		if badges == nil {
			badges = []string{}
		}
		resp.Data = append(resp.Data, httptransport.LeaderboardEntryDTO{
			UserID: entry.UserID,
			Name:   entry.Name,
			Points: entry.Points,
			Level:  entry.Level,
			Badges: badges,
		})
	}
	return resp, nil
}

func userToDTO(user entities.User) httptransport.UserDTO {
	badges := user.Badges
	if badges == nil {
		badges = []string{}
	}
	return httptransport.UserDTO{
		UserID:           user.UserID,
		Name:             user.Name,
		Email:            user.Email,
		Avatar:           user.Avatar,
		Points:           user.Points,
		XP:               user.XP,
		TrustScore:       user.TrustScore,
		Level:            user.Level,
		Badges:           badges,
		CreatedPins:      user.CreatedPins,
		VerifiedPins:     user.VerifiedPins,
		SubmittedReports: user.SubmittedReports,
		ResolvedPins:     user.ResolvedPins,
	}
}
