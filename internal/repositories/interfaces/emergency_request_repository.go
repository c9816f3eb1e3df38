package interfaces

import (
	"context"

	"lifeline/internal/models"
	"lifeline/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmergencyRequestRepository is the durable store behind the request state
// machine. Every transition method is an atomic conditional update keyed on
// the record's current status: the mutation either applies in one round-trip
// or fails with ErrPreconditionFailed, never half-applies. There is no
// request-wide lock and no method holds state across two round-trips.
type EmergencyRequestRepository interface {
	Create(ctx context.Context, request *models.EmergencyRequest) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EmergencyRequest, error)

	// FindActiveByCreator returns the creator's pending or accepted request,
	// or (nil, nil) when there is none. Backs the singleton-in-flight guard.
	FindActiveByCreator(ctx context.Context, creatorID primitive.ObjectID) (*models.EmergencyRequest, error)

	// Accept appends the hospital to accepted_by and promotes pending to
	// accepted in one conditional update. Preconditions: status is pending or
	// accepted, no finalized hospital, hospital not already a member. Two
	// hospitals accepting concurrently both succeed; the same hospital twice
	// does not.
	Accept(ctx context.Context, id, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error)

	// Finalize commits the request to one hospital. Preconditions: creator
	// matches, status is accepted, finalized_hospital still null, hospital is
	// a member of accepted_by. Exactly one concurrent finalize can win.
	Finalize(ctx context.Context, id, creatorID, hospitalID, patientProfileID primitive.ObjectID) (*models.EmergencyRequest, error)

	// Resolve closes a finalized request. Preconditions: status is finalized
	// and finalized_hospital matches.
	Resolve(ctx context.Context, id, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error)

	// Cancel moves a non-terminal request of the creator to cancelled.
	// Terminal states fail the precondition; idempotency is layered on top by
	// the service.
	Cancel(ctx context.Context, id, creatorID primitive.ObjectID) (*models.EmergencyRequest, error)

	SetPhoto(ctx context.Context, id primitive.ObjectID, photoURL string) (*models.EmergencyRequest, error)

	ListByCreatorAndStatus(ctx context.Context, creatorID primitive.ObjectID, status models.RequestStatus, params *utils.PaginationParams) ([]*models.EmergencyRequest, int64, error)

	// ListNearbyPending returns pending requests within radiusMeters of the
	// hospital's location that the hospital has not already accepted, newest
	// first.
	ListNearbyPending(ctx context.Context, location models.Location, radiusMeters float64, excludeHospitalID primitive.ObjectID) ([]*models.EmergencyRequest, error)

	ListByAcceptedHospital(ctx context.Context, hospitalID primitive.ObjectID, status models.RequestStatus) ([]*models.EmergencyRequest, error)

	ListByFinalizedHospital(ctx context.Context, hospitalID primitive.ObjectID, status models.RequestStatus) ([]*models.EmergencyRequest, error)
}
