package interfaces

import (
	"context"

	"lifeline/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HospitalRepository stores hospital profiles and doubles as the spatial index
// over their locations.
type HospitalRepository interface {
	Create(ctx context.Context, hospital *models.HospitalProfile) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.HospitalProfile, error)

	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.HospitalProfile, error)

	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.HospitalProfile, error)

	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// FindNearby returns hospitals within radiusMeters of the point, nearest
	// first, via the 2dsphere index.
	FindNearby(ctx context.Context, location models.Location, radiusMeters float64) ([]*models.HospitalProfile, error)

	// SetBedData replaces the ward availability list.
	SetBedData(ctx context.Context, id primitive.ObjectID, beds []models.BedData) (*models.HospitalProfile, error)

	// SetBloodData replaces the blood inventory and the availability flag in
	// the same write, so the flag cannot drift from the stock it derives from.
	SetBloodData(ctx context.Context, id primitive.ObjectID, blood models.BloodData, available bool) (*models.HospitalProfile, error)
}
