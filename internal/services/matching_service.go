package services

import (
	"context"
	"fmt"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
)

// MatchingService screens hospitals by proximity. Candidate selection at
// creation goes through the store's spatial index; the acceptance-time
// re-check is a direct geodesic computation against the hospital's current
// stored location, which defends against stale candidate lists and edited
// hospital locations.
type MatchingService interface {
	// CandidatesWithin returns hospitals within radiusKM of the point,
	// nearest first. Creation fails when this is empty.
	CandidatesWithin(ctx context.Context, location models.Location, radiusKM float64) ([]*models.HospitalProfile, error)

	// IsWithin reports whether the hospital's location is within radiusKM of
	// the point, measured as great-circle distance.
	IsWithin(location models.Location, hospital *models.HospitalProfile, radiusKM float64) bool

	// Radius is the configured screening radius in kilometers.
	Radius() float64
}

type matchingService struct {
	hospitalRepo interfaces.HospitalRepository
	radiusKM     float64
}

func NewMatchingService(hospitalRepo interfaces.HospitalRepository, radiusKM float64) MatchingService {
	if radiusKM <= 0 {
		radiusKM = utils.HospitalSearchRadiusKM
	}
	return &matchingService{
		hospitalRepo: hospitalRepo,
		radiusKM:     radiusKM,
	}
}

func (s *matchingService) CandidatesWithin(ctx context.Context, location models.Location, radiusKM float64) ([]*models.HospitalProfile, error) {
	hospitals, err := s.hospitalRepo.FindNearby(ctx, location, radiusKM*1000)
	if err != nil {
		return nil, fmt.Errorf("failed to screen candidate hospitals: %w", err)
	}
	return hospitals, nil
}

func (s *matchingService) IsWithin(location models.Location, hospital *models.HospitalProfile, radiusKM float64) bool {
	if !hospital.Location.HasCoordinates() || !location.HasCoordinates() {
		return false
	}
	return utils.IsWithinRadius(
		location.Latitude(), location.Longitude(),
		hospital.Location.Latitude(), hospital.Location.Longitude(),
		radiusKM,
	)
}

func (s *matchingService) Radius() float64 {
	return s.radiusKM
}
