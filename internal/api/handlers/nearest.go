package handlers

import (
	"accident-alert-service/internal/api/dto"
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"accident-alert-service/internal/ports"
	"accident-alert-service/internal/services"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// NearestHandler answers read-only "who is closest" lookups without writing a report.
type NearestHandler struct {
	Store ports.FacilityStore
}

func (h *NearestHandler) Find(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParam(r, "lat")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := parseFloatParam(r, "lon")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	nearest, err := services.FindNearest(r.Context(), domain.Coordinates{Lat: lat, Lon: lon}, h.Store)
	if errors.Is(err, domain.ErrInvalidCoordinates) {
		writeError(w, r, http.StatusBadRequest, "lat and lon must be finite")
		return
	}
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("find nearest failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FindNearestResponse{
		Police:  dto.FromNearest(nearest.Dispatch.Police),
		Rescue:  dto.FromNearest(nearest.Dispatch.Rescue),
		Skipped: dto.FromSkipped(nearest.Skipped),
	})
}
