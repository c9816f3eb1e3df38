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

type hospitalRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewHospitalRepository(db *mongo.Database, cache services.CacheService) interfaces.HospitalRepository {
	return &hospitalRepository{
		collection: db.Collection("hospitals"),
		cache:      cache,
	}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *models.HospitalProfile) error {
	hospital.ID = primitive.NewObjectID()
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = hospital.CreatedAt
	hospital.BloodAvailable = hospital.BloodData.TotalUnits() > 0

	_, err := r.collection.InsertOne(ctx, hospital)
	if err != nil {
		return fmt.Errorf("failed to create hospital profile: %w", err)
	}

	return nil
}

func (r *hospitalRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HospitalProfile, error) {
	if hospital := r.getHospitalFromCache(ctx, id.Hex()); hospital != nil {
		return hospital, nil
	}

	var hospital models.HospitalProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&hospital)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hospital profile: %w", err)
	}

	r.cacheHospital(ctx, &hospital)

	return &hospital, nil
}

func (r *hospitalRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.HospitalProfile, error) {
	var hospital models.HospitalProfile
	err := r.collection.FindOne(ctx, bson.M{"owner": ownerID}).Decode(&hospital)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hospital profile by owner: %w", err)
	}

	return &hospital, nil
}

func (r *hospitalRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.HospitalProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find hospital profiles: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeHospitals(ctx, cursor)
}

func (r *hospitalRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update hospital profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateHospitalCache(ctx, id.Hex())

	return nil
}

func (r *hospitalRepository) FindNearby(ctx context.Context, location models.Location, radiusMeters float64) ([]*models.HospitalProfile, error) {
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
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby hospitals: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeHospitals(ctx, cursor)
}

func (r *hospitalRepository) SetBedData(ctx context.Context, id primitive.ObjectID, beds []models.BedData) (*models.HospitalProfile, error) {
	update := bson.M{
		"$set": bson.M{
			"bed_data":   beds,
			"updated_at": time.Now(),
		},
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *hospitalRepository) SetBloodData(ctx context.Context, id primitive.ObjectID, blood models.BloodData, available bool) (*models.HospitalProfile, error) {
	// The flag travels in the same write as the inventory it derives from.
	update := bson.M{
		"$set": bson.M{
			"blood_data":         blood,
			"is_blood_available": available,
			"updated_at":         time.Now(),
		},
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *hospitalRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.HospitalProfile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var hospital models.HospitalProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&hospital)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update hospital profile: %w", err)
	}

	r.invalidateHospitalCache(ctx, id.Hex())

	return &hospital, nil
}

func decodeHospitals(ctx context.Context, cursor *mongo.Cursor) ([]*models.HospitalProfile, error) {
	var hospitals []*models.HospitalProfile
	for cursor.Next(ctx) {
		var hospital models.HospitalProfile
		if err := cursor.Decode(&hospital); err != nil {
			return nil, fmt.Errorf("failed to decode hospital profile: %w", err)
		}
		hospitals = append(hospitals, &hospital)
	}
	return hospitals, nil
}

// Cache operations
func (r *hospitalRepository) cacheHospital(ctx context.Context, hospital *models.HospitalProfile) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheHospitalPrefix+hospital.ID.Hex(), hospital, 30*time.Minute)
	}
}

func (r *hospitalRepository) getHospitalFromCache(ctx context.Context, id string) *models.HospitalProfile {
	if r.cache == nil {
		return nil
	}

	var hospital models.HospitalProfile
	if err := r.cache.Get(ctx, utils.CacheHospitalPrefix+id, &hospital); err != nil {
		return nil
	}

	return &hospital
}

func (r *hospitalRepository) invalidateHospitalCache(ctx context.Context, id string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheHospitalPrefix+id)
	}
}
