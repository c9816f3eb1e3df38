package interfaces

import (
	"context"

	"lifeline/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.PatientProfile) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PatientProfile, error)

	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.PatientProfile, error)

	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// AddMedicalHistoryItem appends one tagged history entry to the owner's
	// profile.
	AddMedicalHistoryItem(ctx context.Context, ownerID primitive.ObjectID, item models.MedicalHistoryItem) (*models.PatientProfile, error)

	// RemoveMedicalHistoryItem deletes the entry by id.
	RemoveMedicalHistoryItem(ctx context.Context, ownerID, itemID primitive.ObjectID) (*models.PatientProfile, error)
}
