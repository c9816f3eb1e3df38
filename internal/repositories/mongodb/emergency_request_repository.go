package mongodb

import (
	"context"
	"fmt"
	"time"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/services"
	"lifeline/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type emergencyRequestRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewEmergencyRequestRepository(db *mongo.Database, cache services.CacheService) interfaces.EmergencyRequestRepository {
	return &emergencyRequestRepository{
		collection: db.Collection("emergency_requests"),
		cache:      cache,
	}
}

func (r *emergencyRequestRepository) Create(ctx context.Context, request *models.EmergencyRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	if request.AcceptedBy == nil {
		request.AcceptedBy = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create emergency request: %w", err)
	}

	// In-flight requests are read on every poll; keep them warm.
	if request.IsInFlight() {
		r.cacheRequest(ctx, request)
	}

	return nil
}

func (r *emergencyRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EmergencyRequest, error) {
	if request := r.getRequestFromCache(ctx, id.Hex()); request != nil {
		return request, nil
	}

	var request models.EmergencyRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get emergency request: %w", err)
	}

	if request.IsInFlight() {
		r.cacheRequest(ctx, &request)
	}

	return &request, nil
}

func (r *emergencyRequestRepository) FindActiveByCreator(ctx context.Context, creatorID primitive.ObjectID) (*models.EmergencyRequest, error) {
	filter := bson.M{
		"created_by": creatorID,
		"status":     bson.M{"$in": models.InFlightStatuses()},
	}

	var request models.EmergencyRequest
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active request by creator: %w", err)
	}

	return &request, nil
}

// conditionalUpdate is the single mutation gate of the state machine. The
// filter carries the expected precondition; the update applies atomically or
// not at all. A miss is disambiguated into ErrNotFound vs ErrPreconditionFailed
// with a follow-up point read, so callers can tell "someone else already moved
// it" from "unknown id".
func (r *emergencyRequestRepository) conditionalUpdate(ctx context.Context, id primitive.ObjectID, filter, update bson.M) (*models.EmergencyRequest, error) {
	filter["_id"] = id

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.EmergencyRequest
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		r.invalidateRequestCache(ctx, id.Hex())
		return &updated, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to update emergency request: %w", err)
	}

	exists, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to check emergency request existence: %w", err)
	}
	if exists == 0 {
		return nil, interfaces.ErrNotFound
	}
	return nil, interfaces.ErrPreconditionFailed
}

func (r *emergencyRequestRepository) Accept(ctx context.Context, id, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error) {
	filter := bson.M{
		"status":             bson.M{"$in": models.InFlightStatuses()},
		"finalized_hospital": nil,
		"accepted_by":        bson.M{"$ne": hospitalID},
	}
	update := bson.M{
		"$addToSet": bson.M{"accepted_by": hospitalID},
		"$set": bson.M{
			"status":     models.RequestStatusAccepted,
			"updated_at": time.Now(),
		},
	}

	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *emergencyRequestRepository) Finalize(ctx context.Context, id, creatorID, hospitalID, patientProfileID primitive.ObjectID) (*models.EmergencyRequest, error) {
	filter := bson.M{
		"created_by":         creatorID,
		"status":             models.RequestStatusAccepted,
		"finalized_hospital": nil,
		"accepted_by":        hospitalID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":             models.RequestStatusFinalized,
			"finalized_hospital": hospitalID,
			"patient_profile":    patientProfileID,
			"updated_at":         time.Now(),
		},
	}

	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *emergencyRequestRepository) Resolve(ctx context.Context, id, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error) {
	filter := bson.M{
		"status":             models.RequestStatusFinalized,
		"finalized_hospital": hospitalID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.RequestStatusResolved,
			"updated_at": time.Now(),
		},
	}

	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *emergencyRequestRepository) Cancel(ctx context.Context, id, creatorID primitive.ObjectID) (*models.EmergencyRequest, error) {
	filter := bson.M{
		"created_by": creatorID,
		"status": bson.M{"$in": []models.RequestStatus{
			models.RequestStatusPending,
			models.RequestStatusAccepted,
			models.RequestStatusFinalized,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     models.RequestStatusCancelled,
			"updated_at": time.Now(),
		},
	}

	return r.conditionalUpdate(ctx, id, filter, update)
}

func (r *emergencyRequestRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, photoURL string) (*models.EmergencyRequest, error) {
	update := bson.M{
		"$set": bson.M{
			"photo":      photoURL,
			"updated_at": time.Now(),
		},
	}

	return r.conditionalUpdate(ctx, id, bson.M{}, update)
}

func (r *emergencyRequestRepository) ListByCreatorAndStatus(ctx context.Context, creatorID primitive.ObjectID, status models.RequestStatus, params *utils.PaginationParams) ([]*models.EmergencyRequest, int64, error) {
	filter := bson.M{
		"created_by": creatorID,
		"status":     status,
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count emergency requests: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find emergency requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests, err := decodeRequests(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *emergencyRequestRepository) ListNearbyPending(ctx context.Context, location models.Location, radiusMeters float64, excludeHospitalID primitive.ObjectID) ([]*models.EmergencyRequest, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": location.Coordinates,
				},
				"$maxDistance": radiusMeters,
			},
		},
		"status":      models.RequestStatusPending,
		"accepted_by": bson.M{"$nin": []primitive.ObjectID{excludeHospitalID}},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby pending requests: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRequests(ctx, cursor)
}

func (r *emergencyRequestRepository) ListByAcceptedHospital(ctx context.Context, hospitalID primitive.ObjectID, status models.RequestStatus) ([]*models.EmergencyRequest, error) {
	filter := bson.M{
		"status":      status,
		"accepted_by": hospitalID,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find requests by accepting hospital: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRequests(ctx, cursor)
}

func (r *emergencyRequestRepository) ListByFinalizedHospital(ctx context.Context, hospitalID primitive.ObjectID, status models.RequestStatus) ([]*models.EmergencyRequest, error) {
	filter := bson.M{
		"status":             status,
		"finalized_hospital": hospitalID,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find requests by finalized hospital: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRequests(ctx, cursor)
}

func decodeRequests(ctx context.Context, cursor *mongo.Cursor) ([]*models.EmergencyRequest, error) {
	var requests []*models.EmergencyRequest
	for cursor.Next(ctx) {
		var request models.EmergencyRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, fmt.Errorf("failed to decode emergency request: %w", err)
		}
		requests = append(requests, &request)
	}
	return requests, nil
}

// Cache operations
func (r *emergencyRequestRepository) cacheRequest(ctx context.Context, request *models.EmergencyRequest) {
	if r.cache != nil {
		cacheKey := utils.CacheRequestPrefix + request.ID.Hex()
		r.cache.Set(ctx, cacheKey, request, 15*time.Minute)
	}
}

func (r *emergencyRequestRepository) getRequestFromCache(ctx context.Context, requestID string) *models.EmergencyRequest {
	if r.cache == nil {
		return nil
	}

	var request models.EmergencyRequest
	if err := r.cache.Get(ctx, utils.CacheRequestPrefix+requestID, &request); err != nil {
		return nil
	}

	return &request
}

func (r *emergencyRequestRepository) invalidateRequestCache(ctx context.Context, requestID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheRequestPrefix+requestID)
	}
}
