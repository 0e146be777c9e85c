package handlers

import (
	"accident-alert-service/internal/api/dto"
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"accident-alert-service/internal/ports"
	"accident-alert-service/internal/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	defaultReportLimit = 50
	maxReportLimit     = 500
)

// AlertHandler accepts accident alerts and exposes the stored reports.
type AlertHandler struct {
	Store    ports.FacilityStore
	Reports  ports.ReportRepository
	Geocoder ports.ReverseGeocoder
}

// Create dispatches an alert to the nearest police and rescue headquarters.
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AlertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}

	svcReq := services.DispatchAlertRequest{
		WitnessName: req.WitnessName,
		Location:    domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon},
		AreaLabel:   req.AreaLabel,
		EvidenceURL: req.EvidenceURL,
	}
	if req.ReportedAt != nil {
		svcReq.ReportedAt = *req.ReportedAt
	}

	report, err := services.DispatchAlert(r.Context(), svcReq, h.Store, h.Reports, h.Geocoder)
	if errors.Is(err, domain.ErrInvalidCoordinates) {
		writeError(w, r, http.StatusBadRequest, "lat and lon must be finite")
		return
	}
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("dispatch alert failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AlertResponse{
		Report:  dto.FromReport(report),
		Message: report.Message(),
	})
}

// List returns the most recent reports, newest first.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultReportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxReportLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	reports, err := h.Reports.ListReports(r.Context(), limit)
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("list reports failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListReportsResponse{Reports: make([]dto.ReportResponse, 0, len(reports))}
	for _, rep := range reports {
		res.Reports = append(res.Reports, dto.FromReport(rep))
	}

	writeJSON(w, r, http.StatusOK, res)
}
