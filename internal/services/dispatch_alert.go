package services

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/metrics"
	"accident-alert-service/internal/platform/obs"
	"accident-alert-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type DispatchAlertRequest struct {
	WitnessName string
	Location    domain.Coordinates
	AreaLabel   string
	EvidenceURL string
	ReportedAt  time.Time
}

// NearestFacilities is the outcome of a two-category lookup.
type NearestFacilities struct {
	Dispatch domain.Dispatch
	Skipped  []*domain.InvalidFacilityError
}

// FindNearest fetches police and rescue headquarters concurrently and resolves
// the nearest of each for query. Candidates with invalid coordinates are
// skipped, logged and returned in Skipped; they never fail the lookup.
func FindNearest(
	ctx context.Context,
	query domain.Coordinates,
	store ports.FacilityStore,
) (_ *NearestFacilities, err error) {
	defer obs.Time(ctx, "services.FindNearest")(&err)

	if store == nil {
		return nil, errors.New("find nearest: facility store must be non-nil")
	}

	if !query.IsFinite() {
		return nil, fmt.Errorf("find nearest: query %v: %w", query, domain.ErrInvalidCoordinates)
	}

	police, rescue, err := fetchCandidates(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("find nearest: %w", err)
	}

	dispatch, err := ResolveCategories(query, police, rescue)
	if err != nil && !errors.Is(err, domain.ErrInvalidFacilityData) {
		return nil, fmt.Errorf("find nearest: %w", err)
	}

	skipped := SkippedFacilities(err)
	for _, s := range skipped {
		metrics.InvalidFacilitiesTotal.WithLabelValues(string(s.Category)).Inc()
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Str("category", string(s.Category)).
			Str("facility_id", s.FacilityID).
			Str("reason", s.Reason).
			Msg("skipped facility with invalid data")
	}

	for _, c := range domain.Categories {
		metrics.ResolutionsTotal.WithLabelValues(string(c), strconv.FormatBool(dispatch.For(c).Found())).Inc()
	}

	return &NearestFacilities{Dispatch: dispatch, Skipped: skipped}, nil
}

// fetchCandidates issues both category reads at once and waits for both.
// The first failure cancels the other read.
func fetchCandidates(ctx context.Context, store ports.FacilityStore) (police, rescue []domain.Facility, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var e error
		police, e = store.ListFacilities(gctx, domain.CategoryPolice)
		if e != nil {
			return fmt.Errorf("list %s facilities: %w", domain.CategoryPolice, e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		rescue, e = store.ListFacilities(gctx, domain.CategoryRescue)
		if e != nil {
			return fmt.Errorf("list %s facilities: %w", domain.CategoryRescue, e)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return police, rescue, nil
}

// DispatchAlert resolves the nearest headquarters for an alert and stores the report.
// geocoder may be nil; it is only consulted when the request has no area label.
func DispatchAlert(
	ctx context.Context,
	req DispatchAlertRequest,
	store ports.FacilityStore,
	reports ports.ReportRepository,
	geocoder ports.ReverseGeocoder,
) (_ *domain.Report, err error) {
	defer obs.Time(ctx, "services.DispatchAlert")(&err)
	defer func() {
		outcome := "sent"
		if err != nil {
			outcome = "failed"
		}
		metrics.AlertsTotal.WithLabelValues(outcome).Inc()
	}()

	if reports == nil {
		return nil, errors.New("dispatch alert: report repository must be non-nil")
	}

	nearest, err := FindNearest(ctx, req.Location, store)
	if err != nil {
		return nil, fmt.Errorf("dispatch alert: %w", err)
	}

	areaLabel := strings.TrimSpace(req.AreaLabel)
	if areaLabel == "" {
		areaLabel = resolveAreaLabel(ctx, req.Location, geocoder)
	}

	reportedAt := req.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}

	report := domain.NewReport(req.WitnessName, req.Location, areaLabel, req.EvidenceURL, reportedAt, nearest.Dispatch)
	if err := reports.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("dispatch alert: save report %s: %w", report.ReportID, err)
	}

	log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Str("report_id", report.ReportID.String()).
		Str("police_id", report.Police.FacilityID).
		Str("rescue_id", report.Rescue.FacilityID).
		Int("skipped", len(nearest.Skipped)).
		Msg("alert dispatched")

	return report, nil
}

// A geocoder failure never fails the alert; the area is reported as unknown.
func resolveAreaLabel(ctx context.Context, c domain.Coordinates, geocoder ports.ReverseGeocoder) string {
	if geocoder == nil {
		return domain.UnknownAreaLabel
	}

	addr, err := geocoder.ReverseGeocode(ctx, c)
	if err != nil {
		log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Msg("reverse geocode failed")
		return domain.UnknownAreaLabel
	}
	return domain.FormatAreaLabel(addr)
}
