package services

import (
	"context"
	"testing"

	"lifeline/internal/apperrors"
	"lifeline/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newHospitalServiceEnv() (HospitalService, *fakeHospitalRepo) {
	repo := newFakeHospitalRepo()
	return NewHospitalService(repo, newTestLogger()), repo
}

func hospitalInput() *CreateHospitalInput {
	return &CreateHospitalInput{
		Name:          "City General",
		LicenseNumber: "WB-2024-0042",
		Type:          models.HospitalTypeMultiSpecialty,
		PhoneNumbers:  []models.PhoneNumber{{Number: "+913322001100"}},
		Longitude:     88.4000,
		Latitude:      22.6000,
	}
}

func TestCreateHospitalProfileDerivesBloodFlag(t *testing.T) {
	service, _ := newHospitalServiceEnv()
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleHospital}

	input := hospitalInput()
	input.BloodData = models.BloodData{Units: map[string]int{"O+": 4, "A-": 0}}

	hospital, err := service.CreateProfile(context.Background(), caller, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !hospital.BloodAvailable {
		t.Error("is_blood_available should derive true from non-empty stock")
	}
}

func TestCreateHospitalProfileRejectsSecond(t *testing.T) {
	service, _ := newHospitalServiceEnv()
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleHospital}

	if _, err := service.CreateProfile(context.Background(), caller, hospitalInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := service.CreateProfile(context.Background(), caller, hospitalInput())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateHospitalProfileRequiresHospitalRole(t *testing.T) {
	service, _ := newHospitalServiceEnv()
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RolePatient}

	_, err := service.CreateProfile(context.Background(), caller, hospitalInput())
	if !apperrors.IsCode(err, apperrors.CodeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestUpdateBloodInventoryRecomputesFlag(t *testing.T) {
	service, _ := newHospitalServiceEnv()
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleHospital}

	input := hospitalInput()
	input.BloodData = models.BloodData{Units: map[string]int{"B+": 2}}
	if _, err := service.CreateProfile(context.Background(), caller, input); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.UpdateBloodInventory(context.Background(), caller, models.BloodData{
		Units: map[string]int{"B+": 0, "O-": 0},
	})
	if err != nil {
		t.Fatalf("update inventory: %v", err)
	}
	if updated.BloodAvailable {
		t.Error("flag should flip to false when stock drains to zero")
	}

	updated, err = service.UpdateBloodInventory(context.Background(), caller, models.BloodData{
		Units: map[string]int{"O-": 3},
	})
	if err != nil {
		t.Fatalf("update inventory: %v", err)
	}
	if !updated.BloodAvailable {
		t.Error("flag should flip back to true with stock")
	}
}

func TestUpdateBloodInventoryRejectsBadGroups(t *testing.T) {
	service, _ := newHospitalServiceEnv()
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleHospital}

	if _, err := service.CreateProfile(context.Background(), caller, hospitalInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := service.UpdateBloodInventory(context.Background(), caller, models.BloodData{
		Units: map[string]int{"Q+": 1},
	})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = service.UpdateBloodInventory(context.Background(), caller, models.BloodData{
		Units: map[string]int{"O+": -1},
	})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error for negative units, got %v", err)
	}
}

func TestSetBedDataRejectsAvailableOverTotal(t *testing.T) {
	service, _ := newHospitalServiceEnv()
	caller := models.Caller{ID: primitive.NewObjectID(), Role: models.RoleHospital}

	if _, err := service.CreateProfile(context.Background(), caller, hospitalInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := service.SetBedData(context.Background(), caller, []models.BedData{
		{Category: "ICU", Total: 4, Available: 6},
	})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	updated, err := service.SetBedData(context.Background(), caller, []models.BedData{
		{Category: "ICU", Total: 4, Available: 2},
	})
	if err != nil {
		t.Fatalf("set beds: %v", err)
	}
	if len(updated.BedData) != 1 || updated.BedData[0].Available != 2 {
		t.Error("bed data should be replaced")
	}
}
