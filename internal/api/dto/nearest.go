package dto

import "accident-alert-service/internal/domain"

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NearestResponse is null-free: an absent result is {"found": false}.
type NearestResponse struct {
	Found         bool                 `json:"found"`
	FacilityID    string               `json:"facility_id,omitempty"`
	Coordinates   *CoordinatesResponse `json:"coordinates,omitempty"`
	Name          string               `json:"name,omitempty"`
	LocationLabel string               `json:"location_label,omitempty"`
	DistanceKm    float64              `json:"distance_km,omitempty"`
}

type SkippedFacilityResponse struct {
	Category   string `json:"category"`
	FacilityID string `json:"facility_id"`
	Reason     string `json:"reason"`
}

type FindNearestResponse struct {
	Police  NearestResponse           `json:"police"`
	Rescue  NearestResponse           `json:"rescue"`
	Skipped []SkippedFacilityResponse `json:"skipped"`
}

func FromNearest(n domain.NearestResult) NearestResponse {
	if !n.Found() {
		return NearestResponse{}
	}
	return NearestResponse{
		Found:         true,
		FacilityID:    n.FacilityID,
		Coordinates:   &CoordinatesResponse{Lat: n.Coordinates.Lat, Lon: n.Coordinates.Lon},
		Name:          n.Name,
		LocationLabel: n.LocationLabel,
		DistanceKm:    n.DistanceKm,
	}
}

func FromSkipped(skipped []*domain.InvalidFacilityError) []SkippedFacilityResponse {
	out := make([]SkippedFacilityResponse, 0, len(skipped))
	for _, s := range skipped {
		out = append(out, SkippedFacilityResponse{
			Category:   string(s.Category),
			FacilityID: s.FacilityID,
			Reason:     s.Reason,
		})
	}
	return out
}
