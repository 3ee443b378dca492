package httpadapter

import (
	"context"
	"log/slog"

	"belli/contexts/hazard-reporting/classifier-service/application"
	httptransport "belli/contexts/hazard-reporting/classifier-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) AnalyzeHandler(ctx context.Context, req httptransport.AnalyzeRequest) (httptransport.AnalyzeResponse, error) {
	result, err := h.Service.Analyze(ctx, req.Description, req.PhotoURL)
	if err != nil {
		return httptransport.AnalyzeResponse{}, err
	}
	resp := httptransport.AnalyzeResponse{Status: "success"}
	resp.Data.Category = string(result.Category)
	resp.Data.Severity = string(result.Severity)
	resp.Data.RecommendedAgency = result.RecommendedAgency
	resp.Data.Confidence = result.Confidence
	resp.Data.Summary = result.Summary
	resp.Data.FraudFlags = httptransport.FraudFlagsDTO{
		DuplicateImage: result.FraudFlags.DuplicateImage,
		IsLikelyFake:   result.FraudFlags.IsLikelyFake,
		MissingHazard:  result.FraudFlags.MissingHazard,
	}
	return resp, nil
}
