package mongodb

import (
	"context"
	"fmt"
	"time"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type patientRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewPatientRepository(db *mongo.Database, cache services.CacheService) interfaces.PatientRepository {
	return &patientRepository{
		collection: db.Collection("patients"),
		cache:      cache,
	}
}

func (r *patientRepository) Create(ctx context.Context, patient *models.PatientProfile) error {
	patient.ID = primitive.NewObjectID()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	_, err := r.collection.InsertOne(ctx, patient)
	if err != nil {
		return fmt.Errorf("failed to create patient profile: %w", err)
	}

	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}

	return &patient, nil
}

func (r *patientRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	err := r.collection.FindOne(ctx, bson.M{"owner": ownerID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient profile by owner: %w", err)
	}

	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update patient profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *patientRepository) AddMedicalHistoryItem(ctx context.Context, ownerID primitive.ObjectID, item models.MedicalHistoryItem) (*models.PatientProfile, error) {
	item.ID = primitive.NewObjectID()
	item.RecordedAt = time.Now()

	update := bson.M{
		"$push": bson.M{"medical_history": item},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var patient models.PatientProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"owner": ownerID}, update, opts).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to add medical history item: %w", err)
	}

	return &patient, nil
}

func (r *patientRepository) RemoveMedicalHistoryItem(ctx context.Context, ownerID, itemID primitive.ObjectID) (*models.PatientProfile, error) {
	update := bson.M{
		"$pull": bson.M{"medical_history": bson.M{"_id": itemID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var patient models.PatientProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"owner": ownerID}, update, opts).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to remove medical history item: %w", err)
	}

	return &patient, nil
}
