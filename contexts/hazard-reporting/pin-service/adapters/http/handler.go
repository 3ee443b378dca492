package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"belli/contexts/hazard-reporting/pin-service/application"
	"belli/contexts/hazard-reporting/pin-service/domain/entities"
	"belli/contexts/hazard-reporting/pin-service/ports"
	httptransport "belli/contexts/hazard-reporting/pin-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePinHandler(ctx context.Context, req httptransport.CreatePinRequest, ai *ports.AIResult) (httptransport.PinResponse, error) {
	pin, err := h.Service.CreatePin(ctx, ports.CreatePinInput{
		UserID:            req.UserID,
		Description:       req.Description,
		Severity:          entities.Severity(req.Severity),
		Category:          entities.HazardCategory(req.Category),
		RecommendedAgency: req.RecommendedAgency,
		Location: entities.Location{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		},
		PhotoURL: req.PhotoURL,
	}, ai)
	if err != nil {
		return httptransport.PinResponse{}, err
	}
	return httptransport.PinResponse{Status: "success", Data: pinToDTO(pin)}, nil
}

func (h Handler) ListPinsHandler(ctx context.Context) (httptransport.PinListResponse, error) {
	pins, err := h.Service.ListPins(ctx)
	if err != nil {
		return httptransport.PinListResponse{}, err
	}
	resp := httptransport.PinListResponse{
		Status: "success",
		Data:   make([]httptransport.PinDTO, 0, len(pins)),
	}
	for _, pin := range pins {
		resp.Data = append(resp.Data, pinToDTO(pin))
	}
	return resp, nil
}

func (h Handler) GetPinHandler(ctx context.Context, pinID string) (httptransport.PinResponse, error) {
	pin, err := h.Service.GetPin(ctx, pinID)
	if err != nil {
		return httptransport.PinResponse{}, err
	}
	return httptransport.PinResponse{Status: "success", Data: pinToDTO(pin)}, nil
}

func (h Handler) RecordVerificationHandler(ctx context.Context, req httptransport.VerificationRequest) (httptransport.PinResponse, error) {
	pin, err := h.Service.RecordVerification(ctx, ports.VerificationInput{
		UserID:  req.UserID,
		PinID:   req.PinID,
		Vote:    entities.VoteType(req.Vote),
		Comment: req.Comment,
	})
	if err != nil {
		return httptransport.PinResponse{}, err
	}
	return httptransport.PinResponse{Status: "success", Data: pinToDTO(pin)}, nil
}

func (h Handler) MarkResolvedHandler(ctx context.Context, pinID string, req httptransport.ResolvePinRequest) (httptransport.PinResponse, error) {
	pin, err := h.Service.MarkResolved(ctx, pinID, req.UserID)
	if err != nil {
		return httptransport.PinResponse{}, err
	}
	return httptransport.PinResponse{Status: "success", Data: pinToDTO(pin)}, nil
}

func (h Handler) DatasetHandler(ctx context.Context) (httptransport.DatasetResponse, error) {
	records, err := h.Service.Dataset(ctx)
	if err != nil {
		return httptransport.DatasetResponse{}, err
	}
	resp := httptransport.DatasetResponse{
		Status: "success",
		Data:   make([]httptransport.DatasetRecordDTO, 0, len(records)),
	}
	for _, record := range records {
		resp.Data = append(resp.Data, httptransport.DatasetRecordDTO{
			PinID:             record.PinID,
			Description:       record.Description,
			Severity:          string(record.Severity),
			Category:          string(record.Category),
			RecommendedAgency: record.RecommendedAgency,
			Location: httptransport.LocationDTO{
				Lat:     record.Location.Lat,
				Lng:     record.Location.Lng,
				Address: record.Location.Address,
			},
			Status:            string(record.Status),
			VerificationScore: record.VerificationScore,
			CreatedAt:         record.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func pinToDTO(pin entities.Pin) httptransport.PinDTO {
	dto := httptransport.PinDTO{
		PinID:             pin.PinID,
		UserID:            pin.UserID,
		Description:       pin.Description,
		Severity:          string(pin.Severity),
		Category:          string(pin.Category),
		RecommendedAgency: pin.RecommendedAgency,
		Location: httptransport.LocationDTO{
			Lat:     pin.Location.Lat,
			Lng:     pin.Location.Lng,
			Address: pin.Location.Address,
		},
		PhotoURL:     pin.PhotoURL,
		Status:       string(pin.Status),
		AIConfidence: pin.AIConfidence,
		CreatedAt:    pin.CreatedAt.UTC().Format(time.RFC3339),
		VerificationStats: httptransport.VerificationStatsDTO{
			Upvotes:   pin.VerificationStats.Upvotes,
			Downvotes: pin.VerificationStats.Downvotes,
			Score:     pin.VerificationStats.Score,
		},
		Attachments: pin.Attachments,
	}
	if pin.LastVerifiedAt != nil {
		dto.LastVerifiedAt = pin.LastVerifiedAt.UTC().Format(time.RFC3339)
	}
	if dto.Attachments == nil {
		dto.Attachments = []string{}
	}
	return dto
}
