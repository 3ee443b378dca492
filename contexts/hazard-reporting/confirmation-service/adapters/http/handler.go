package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"belli/contexts/hazard-reporting/confirmation-service/application"
	"belli/contexts/hazard-reporting/confirmation-service/domain/entities"
	"belli/contexts/hazard-reporting/confirmation-service/ports"
	httptransport "belli/contexts/hazard-reporting/confirmation-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SubmitConfirmationHandler(ctx context.Context, req httptransport.SubmitConfirmationRequest) (httptransport.ConfirmationResponse, error) {
	confirmation, err := h.Service.SubmitConfirmation(ctx, ports.ConfirmationInput{
		UserID:     req.UserID,
		PinID:      req.PinID,
		FileURL:    req.FileURL,
		ReportText: req.ReportText,
		ReportType: entities.ReportType(req.ReportType),
	})
	if err != nil {
		return httptransport.ConfirmationResponse{}, err
	}
	return httptransport.ConfirmationResponse{
		Status: "success",
		Data:   confirmationToDTO(confirmation),
	}, nil
}

func (h Handler) ListConfirmationsHandler(ctx context.Context, pinID string) (httptransport.ConfirmationListResponse, error) {
	confirmations, err := h.Service.ListConfirmations(ctx, pinID)
	if err != nil {
		return httptransport.ConfirmationListResponse{}, err
	}
	resp := httptransport.ConfirmationListResponse{
		Status: "success",
		Data:   make([]httptransport.ConfirmationDTO, 0, len(confirmations)),
	}
	for _, confirmation := range confirmations {
		resp.Data = append(resp.Data, confirmationToDTO(confirmation))
	}
	return resp, nil
}

func confirmationToDTO(confirmation entities.ReportConfirmation) httptransport.ConfirmationDTO {
	return httptransport.ConfirmationDTO{
		ConfirmationID: confirmation.ConfirmationID,
		PinID:          confirmation.PinID,
		UserID:         confirmation.UserID,
		FileURL:        confirmation.FileURL,
		ExtractedText:  confirmation.ExtractedText,
		IsValid:        confirmation.IsValid,
		ReportType:     string(confirmation.ReportType),
		CreatedAt:      confirmation.CreatedAt.UTC().Format(time.RFC3339),
	}
}
