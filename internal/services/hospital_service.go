package services

import (
	"context"
	"errors"

	"lifeline/internal/apperrors"
	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateHospitalInput is the registration payload for a hospital profile.
type CreateHospitalInput struct {
	Name               string
	LicenseNumber      string
	Type               models.HospitalType
	PhoneNumbers       []models.PhoneNumber
	Longitude          float64
	Latitude           float64
	Address            models.Address
	BedData            []models.BedData
	BloodData          models.BloodData
	AmbulanceAvailable bool
}

// UpdateHospitalInput carries optional profile edits. Nil fields are left
// untouched. Bed and blood inventory have their own operations and are not
// editable here.
type UpdateHospitalInput struct {
	Name               *string
	Type               *models.HospitalType
	PhoneNumbers       []models.PhoneNumber
	Longitude          *float64
	Latitude           *float64
	Address            *models.Address
	AmbulanceAvailable *bool
}

type HospitalService interface {
	CreateProfile(ctx context.Context, caller models.Caller, input *CreateHospitalInput) (*models.HospitalProfile, error)
	GetOwnProfile(ctx context.Context, caller models.Caller) (*models.HospitalProfile, error)
	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.HospitalProfile, error)
	UpdateProfile(ctx context.Context, caller models.Caller, input *UpdateHospitalInput) (*models.HospitalProfile, error)
	SetBedData(ctx context.Context, caller models.Caller, beds []models.BedData) (*models.HospitalProfile, error)
	UpdateBloodInventory(ctx context.Context, caller models.Caller, blood models.BloodData) (*models.HospitalProfile, error)
}

type hospitalService struct {
	hospitalRepo interfaces.HospitalRepository
	logger       *logger.Logger
}

func NewHospitalService(hospitalRepo interfaces.HospitalRepository, log *logger.Logger) HospitalService {
	return &hospitalService{
		hospitalRepo: hospitalRepo,
		logger:       log,
	}
}

func (s *hospitalService) CreateProfile(ctx context.Context, caller models.Caller, input *CreateHospitalInput) (*models.HospitalProfile, error) {
	if err := requireRole(caller, models.RoleHospital); err != nil {
		return nil, err
	}

	if !models.ValidHospitalType(input.Type) {
		return nil, apperrors.Validationf("invalid hospital type %q", input.Type)
	}
	if err := validateBedData(input.BedData); err != nil {
		return nil, err
	}
	if err := validateBloodData(input.BloodData); err != nil {
		return nil, err
	}

	existing, err := s.hospitalRepo.GetByOwner(ctx, caller.ID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, apperrors.Dependency(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("a hospital profile already exists for this account")
	}

	hospital := &models.HospitalProfile{
		Owner:              caller.ID,
		Name:               input.Name,
		LicenseNumber:      input.LicenseNumber,
		Type:               input.Type,
		PhoneNumbers:       input.PhoneNumbers,
		Location:           models.NewPoint(input.Longitude, input.Latitude),
		BedData:            input.BedData,
		BloodData:          input.BloodData,
		Address:            input.Address,
		AmbulanceAvailable: input.AmbulanceAvailable,
	}

	if err := s.hospitalRepo.Create(ctx, hospital); err != nil {
		return nil, apperrors.Dependency(err)
	}

	s.logger.WithHospitalID(hospital.ID).Info("hospital profile created")

	return hospital, nil
}

func (s *hospitalService) GetOwnProfile(ctx context.Context, caller models.Caller) (*models.HospitalProfile, error) {
	if err := requireRole(caller, models.RoleHospital); err != nil {
		return nil, err
	}

	hospital, err := s.hospitalRepo.GetByOwner(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return hospital, nil
}

func (s *hospitalService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.HospitalProfile, error) {
	hospital, err := s.hospitalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital")
		}
		return nil, apperrors.Dependency(err)
	}

	return hospital, nil
}

func (s *hospitalService) UpdateProfile(ctx context.Context, caller models.Caller, input *UpdateHospitalInput) (*models.HospitalProfile, error) {
	hospital, err := s.GetOwnProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		if !models.ValidHospitalType(*input.Type) {
			return nil, apperrors.Validationf("invalid hospital type %q", *input.Type)
		}
		updates["type"] = *input.Type
	}
	if input.PhoneNumbers != nil {
		updates["phone_numbers"] = input.PhoneNumbers
	}
	if input.Longitude != nil && input.Latitude != nil {
		updates["location"] = models.NewPoint(*input.Longitude, *input.Latitude)
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.AmbulanceAvailable != nil {
		updates["is_ambulance_available"] = *input.AmbulanceAvailable
	}

	if len(updates) == 0 {
		return hospital, nil
	}

	if err := s.hospitalRepo.Update(ctx, hospital.ID, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return s.GetProfile(ctx, hospital.ID)
}

func (s *hospitalService) SetBedData(ctx context.Context, caller models.Caller, beds []models.BedData) (*models.HospitalProfile, error) {
	hospital, err := s.GetOwnProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := validateBedData(beds); err != nil {
		return nil, err
	}

	updated, err := s.hospitalRepo.SetBedData(ctx, hospital.ID, beds)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital profile")
		}
		return nil, apperrors.Dependency(err)
	}

	return updated, nil
}

// UpdateBloodInventory replaces the stock and recomputes the availability
// flag from it in the same write.
func (s *hospitalService) UpdateBloodInventory(ctx context.Context, caller models.Caller, blood models.BloodData) (*models.HospitalProfile, error) {
	hospital, err := s.GetOwnProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := validateBloodData(blood); err != nil {
		return nil, err
	}

	available := blood.TotalUnits() > 0

	updated, err := s.hospitalRepo.SetBloodData(ctx, hospital.ID, blood, available)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital profile")
		}
		return nil, apperrors.Dependency(err)
	}

	s.logger.WithHospitalID(hospital.ID).WithField("is_blood_available", available).Info("blood inventory updated")

	return updated, nil
}

func validateBedData(beds []models.BedData) error {
	for _, bed := range beds {
		if bed.Category == "" {
			return apperrors.Validation("bed category is required")
		}
		if bed.Total < 0 || bed.Available < 0 {
			return apperrors.Validation("bed counts cannot be negative")
		}
		if bed.Available > bed.Total {
			return apperrors.Validationf("available beds exceed total for category %q", bed.Category)
		}
	}
	return nil
}

func validateBloodData(blood models.BloodData) error {
	for group, units := range blood.Units {
		if !models.ValidBloodGroup(models.BloodGroup(group)) {
			return apperrors.Validationf("invalid blood group %q", group)
		}
		if units < 0 {
			return apperrors.Validationf("blood units cannot be negative for group %q", group)
		}
	}
	return nil
}
