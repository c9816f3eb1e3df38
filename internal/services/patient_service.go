package services

import (
	"context"
	"errors"
	"time"

	"lifeline/internal/apperrors"
	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePatientInput is the registration payload for a patient profile.
type CreatePatientInput struct {
	Name              string
	Email             string
	PhoneNumber       string
	DateOfBirth       time.Time
	BloodGroup        models.BloodGroup
	Address           models.Address
	EmergencyContacts []models.EmergencyContact
	Longitude         *float64
	Latitude          *float64
}

// UpdatePatientInput carries optional profile edits; nil fields are untouched.
type UpdatePatientInput struct {
	Name              *string
	Email             *string
	PhoneNumber       *string
	DateOfBirth       *time.Time
	BloodGroup        *models.BloodGroup
	Address           *models.Address
	EmergencyContacts []models.EmergencyContact
	Longitude         *float64
	Latitude          *float64
}

type PatientService interface {
	CreateProfile(ctx context.Context, caller models.Caller, input *CreatePatientInput) (*models.PatientProfile, error)
	GetOwnProfile(ctx context.Context, caller models.Caller) (*models.PatientProfile, error)
	UpdateProfile(ctx context.Context, caller models.Caller, input *UpdatePatientInput) (*models.PatientProfile, error)
	AddMedicalHistory(ctx context.Context, caller models.Caller, item models.MedicalHistoryItem) (*models.PatientProfile, error)
	RemoveMedicalHistory(ctx context.Context, caller models.Caller, itemID primitive.ObjectID) (*models.PatientProfile, error)
}

type patientService struct {
	patientRepo interfaces.PatientRepository
	logger      *logger.Logger
}

func NewPatientService(patientRepo interfaces.PatientRepository, log *logger.Logger) PatientService {
	return &patientService{
		patientRepo: patientRepo,
		logger:      log,
	}
}

func (s *patientService) CreateProfile(ctx context.Context, caller models.Caller, input *CreatePatientInput) (*models.PatientProfile, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	if input.DateOfBirth.IsZero() || input.DateOfBirth.After(time.Now()) {
		return nil, apperrors.Validation("date of birth must be in the past")
	}
	if input.BloodGroup != "" && !models.ValidBloodGroup(input.BloodGroup) {
		return nil, apperrors.Validationf("invalid blood group %q", input.BloodGroup)
	}

	existing, err := s.patientRepo.GetByOwner(ctx, caller.ID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, apperrors.Dependency(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("a patient profile already exists for this account")
	}

	patient := &models.PatientProfile{
		Owner:             caller.ID,
		Name:              input.Name,
		Email:             input.Email,
		PhoneNumber:       input.PhoneNumber,
		DateOfBirth:       input.DateOfBirth,
		BloodGroup:        input.BloodGroup,
		Address:           input.Address,
		EmergencyContacts: input.EmergencyContacts,
		MedicalHistory:    []models.MedicalHistoryItem{},
	}
	if input.Longitude != nil && input.Latitude != nil {
		patient.Location = models.NewPoint(*input.Longitude, *input.Latitude)
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, apperrors.Dependency(err)
	}

	s.logger.WithCallerID(caller.ID).Info("patient profile created")

	return patient, nil
}

func (s *patientService) GetOwnProfile(ctx context.Context, caller models.Caller) (*models.PatientProfile, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByOwner(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("patient profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return patient, nil
}

func (s *patientService) UpdateProfile(ctx context.Context, caller models.Caller, input *UpdatePatientInput) (*models.PatientProfile, error) {
	patient, err := s.GetOwnProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = *input.PhoneNumber
	}
	if input.DateOfBirth != nil {
		if input.DateOfBirth.After(time.Now()) {
			return nil, apperrors.Validation("date of birth must be in the past")
		}
		updates["dob"] = *input.DateOfBirth
	}
	if input.BloodGroup != nil {
		if !models.ValidBloodGroup(*input.BloodGroup) {
			return nil, apperrors.Validationf("invalid blood group %q", *input.BloodGroup)
		}
		updates["blood_group"] = *input.BloodGroup
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.EmergencyContacts != nil {
		updates["emergency_contacts"] = input.EmergencyContacts
	}
	if input.Longitude != nil && input.Latitude != nil {
		updates["location"] = models.NewPoint(*input.Longitude, *input.Latitude)
	}

	if len(updates) == 0 {
		return patient, nil
	}

	if err := s.patientRepo.Update(ctx, patient.ID, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("patient profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return s.GetOwnProfile(ctx, caller)
}

// historyRule is the per-kind validation for medical history items. Each kind
// names which optional fields it accepts, so a disease entry cannot carry an
// allergy's reaction field.
type historyRule struct {
	requireSeverity bool
	allowDiagnosed  bool
	allowReaction   bool
	allowBodyPart   bool
}

var historyRules = map[models.MedicalHistoryKind]historyRule{
	models.MedicalHistoryDisease: {allowDiagnosed: true},
	models.MedicalHistoryAllergy: {requireSeverity: true, allowReaction: true},
	models.MedicalHistoryInjury:  {allowBodyPart: true, allowDiagnosed: true},
}

var historySeverities = map[string]bool{
	"mild":     true,
	"moderate": true,
	"severe":   true,
}

func validateHistoryItem(item models.MedicalHistoryItem) error {
	rule, ok := historyRules[item.Kind]
	if !ok {
		return apperrors.Validationf("unknown medical history kind %q", item.Kind)
	}
	if item.Name == "" {
		return apperrors.Validation("medical history item name is required")
	}
	if rule.requireSeverity && item.Severity == "" {
		return apperrors.Validationf("severity is required for %s entries", item.Kind)
	}
	if item.Severity != "" && !historySeverities[item.Severity] {
		return apperrors.Validationf("invalid severity %q", item.Severity)
	}
	if item.Reaction != "" && !rule.allowReaction {
		return apperrors.Validationf("reaction is not valid for %s entries", item.Kind)
	}
	if item.BodyPart != "" && !rule.allowBodyPart {
		return apperrors.Validationf("body part is not valid for %s entries", item.Kind)
	}
	if item.DiagnosedAt != nil && !rule.allowDiagnosed {
		return apperrors.Validationf("diagnosis date is not valid for %s entries", item.Kind)
	}
	return nil
}

func (s *patientService) AddMedicalHistory(ctx context.Context, caller models.Caller, item models.MedicalHistoryItem) (*models.PatientProfile, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}
	if err := validateHistoryItem(item); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.AddMedicalHistoryItem(ctx, caller.ID, item)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("patient profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return patient, nil
}

func (s *patientService) RemoveMedicalHistory(ctx context.Context, caller models.Caller, itemID primitive.ObjectID) (*models.PatientProfile, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.RemoveMedicalHistoryItem(ctx, caller.ID, itemID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("patient profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return patient, nil
}
