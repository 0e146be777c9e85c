package dto

import (
	"accident-alert-service/internal/domain"
	"time"
)

type AlertRequest struct {
	WitnessName string     `json:"witness_name"`
	Lat         *float64   `json:"lat"`
	Lon         *float64   `json:"lon"`
	AreaLabel   string     `json:"area_label"`
	EvidenceURL string     `json:"evidence_url"`
	ReportedAt  *time.Time `json:"reported_at"`
}

type ReportResponse struct {
	ReportID    string              `json:"report_id"`
	WitnessName string              `json:"witness_name"`
	Location    CoordinatesResponse `json:"location"`
	AreaLabel   string              `json:"area_label"`
	EvidenceURL string              `json:"evidence_url,omitempty"`
	ReportedAt  time.Time           `json:"reported_at"`
	Police      NearestResponse     `json:"police"`
	Rescue      NearestResponse     `json:"rescue"`
}

type AlertResponse struct {
	Report  ReportResponse `json:"report"`
	Message string         `json:"message"`
}

type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
}

func FromReport(r *domain.Report) ReportResponse {
	return ReportResponse{
		ReportID:    r.ReportID.String(),
		WitnessName: r.WitnessName,
		Location:    CoordinatesResponse{Lat: r.Location.Lat, Lon: r.Location.Lon},
		AreaLabel:   r.AreaLabel,
		EvidenceURL: r.EvidenceURL,
		ReportedAt:  r.ReportedAt,
		Police:      FromNearest(r.Police),
		Rescue:      FromNearest(r.Rescue),
	}
}
