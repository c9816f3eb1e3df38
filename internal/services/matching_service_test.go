package services

import (
	"context"
	"testing"

	"lifeline/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCandidatesWithinFiltersByRadius(t *testing.T) {
	hospitals := newFakeHospitalRepo()
	matching := NewMatchingService(hospitals, 10)

	near := &models.HospitalProfile{Owner: primitive.NewObjectID(), Location: models.NewPoint(88.4000, 22.6000)}
	far := &models.HospitalProfile{Owner: primitive.NewObjectID(), Location: models.NewPoint(88.6000, 22.8000)}
	for _, h := range []*models.HospitalProfile{near, far} {
		if err := hospitals.Create(context.Background(), h); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	candidates, err := matching.CandidatesWithin(context.Background(), models.NewPoint(88.3639, 22.5726), matching.Radius())
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].ID != near.ID {
		t.Error("only the near hospital should qualify")
	}
}

func TestIsWithinUsesGeodesicDistance(t *testing.T) {
	matching := NewMatchingService(newFakeHospitalRepo(), 10)
	patient := models.NewPoint(88.3639, 22.5726)

	near := &models.HospitalProfile{Location: models.NewPoint(88.4000, 22.6000)}
	if !matching.IsWithin(patient, near, 10) {
		t.Error("hospital a few km away should be within 10km")
	}

	far := &models.HospitalProfile{Location: models.NewPoint(88.6000, 22.8000)}
	if matching.IsWithin(patient, far, 10) {
		t.Error("hospital tens of km away should be outside 10km")
	}

	noLocation := &models.HospitalProfile{}
	if matching.IsWithin(patient, noLocation, 10) {
		t.Error("hospital without coordinates can never be within range")
	}
}

func TestMatchingRadiusDefaultsWhenUnset(t *testing.T) {
	matching := NewMatchingService(newFakeHospitalRepo(), 0)
	if matching.Radius() != 10 {
		t.Errorf("radius = %v, want the 10km default", matching.Radius())
	}
}
