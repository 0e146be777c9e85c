package services

import (
	"accident-alert-service/internal/domain"
	"errors"
	"fmt"
	"math"
)

// ResolveNearest returns the candidate closest to query by great-circle distance.
//
// Candidates are scanned once in input order. A candidate replaces the current
// best only when strictly closer, so the first facility at the minimum distance
// wins ties. An empty candidate set yields the zero NearestResult and no error.
//
// Candidates with missing or non-finite coordinates are skipped rather than
// compared. The result is still computed from the remaining candidates, and the
// returned error joins one *domain.InvalidFacilityError per skipped candidate
// (errors.Is(err, domain.ErrInvalidFacilityData) holds). Callers must therefore
// use the result even when err is non-nil, unless the error is
// domain.ErrInvalidCoordinates, which means the query itself was unusable.
func ResolveNearest(query domain.Coordinates, candidates []domain.Facility) (domain.NearestResult, error) {
	return resolveNearest(query, "", candidates)
}

func resolveNearest(
	query domain.Coordinates,
	category domain.Category,
	candidates []domain.Facility,
) (domain.NearestResult, error) {
	if !query.IsFinite() {
		return domain.NearestResult{}, fmt.Errorf("resolve nearest: query %v: %w", query, domain.ErrInvalidCoordinates)
	}

	var (
		best        = -1
		minDistance = math.Inf(1)
		invalid     []error
	)

	for i, f := range candidates {
		if err := f.Validate(); err != nil {
			var ife *domain.InvalidFacilityError
			if errors.As(err, &ife) {
				ife.Category = category
			}
			invalid = append(invalid, err)
			continue
		}

		d := domain.HaversineKm(query, *f.Coordinates)
		if d < minDistance {
			minDistance = d
			best = i
		}
	}

	var result domain.NearestResult
	if best >= 0 {
		result = domain.NearestFrom(candidates[best], minDistance)
	}

	if len(invalid) > 0 {
		return result, errors.Join(invalid...)
	}
	return result, nil
}

// ResolveCategories resolves the nearest police and rescue headquarters for the
// same query. The two resolutions share nothing; skipped-candidate errors from
// both are joined and tagged with their category.
func ResolveCategories(query domain.Coordinates, police, rescue []domain.Facility) (domain.Dispatch, error) {
	if !query.IsFinite() {
		return domain.Dispatch{}, fmt.Errorf("resolve categories: query %v: %w", query, domain.ErrInvalidCoordinates)
	}

	p, policeErr := resolveNearest(query, domain.CategoryPolice, police)
	r, rescueErr := resolveNearest(query, domain.CategoryRescue, rescue)

	return domain.Dispatch{Police: p, Rescue: r}, errors.Join(policeErr, rescueErr)
}

// SkippedFacilities extracts every *domain.InvalidFacilityError from err,
// walking joined and wrapped errors.
func SkippedFacilities(err error) []*domain.InvalidFacilityError {
	switch e := err.(type) {
	case nil:
		return nil
	case *domain.InvalidFacilityError:
		return []*domain.InvalidFacilityError{e}
	case interface{ Unwrap() []error }:
		var out []*domain.InvalidFacilityError
		for _, inner := range e.Unwrap() {
			out = append(out, SkippedFacilities(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return SkippedFacilities(e.Unwrap())
	}
	return nil
}
