package dto

import (
	"commute-tracker/internal/domain"
)

type StatsResponse struct {
	OriginID      int64   `json:"origin_id"`
	DestinationID int64   `json:"destination_id"`
	Count         int     `json:"count"`
	MinMinutes    float64 `json:"min_minutes"`
	MaxMinutes    float64 `json:"max_minutes"`
	MeanMinutes   float64 `json:"mean_minutes"`
}

func FromStats(originID, destinationID int64, s domain.RouteStats) StatsResponse {
	return StatsResponse{
		OriginID:      originID,
		DestinationID: destinationID,
		Count:         s.Count,
		MinMinutes:    s.Min,
		MaxMinutes:    s.Max,
		MeanMinutes:   s.Mean,
	}
}

type RecommendationResponse struct {
	Day             string  `json:"day"`
	DepartAt        string  `json:"depart_at"`
	ExpectedMinutes float64 `json:"expected_minutes"`
	SampleCount     int     `json:"sample_count"`
	Fallback        bool    `json:"fallback"`
}

func FromRecommendations(recs []domain.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, RecommendationResponse{
			Day:             rec.Day.String(),
			DepartAt:        rec.DepartAt.String(),
			ExpectedMinutes: rec.ExpectedMinutes,
			SampleCount:     rec.SampleCount,
			Fallback:        rec.Fallback,
		})
	}
	return out
}
