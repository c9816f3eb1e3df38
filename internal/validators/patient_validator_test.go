package validators

import (
	"testing"
	"time"
)

func validCreatePatient() *CreatePatientRequest {
	return &CreatePatientRequest{
		Name:        "Asha Rao",
		PhoneNumber: "+919830012345",
		DateOfBirth: time.Date(1988, 6, 12, 0, 0, 0, 0, time.UTC),
		BloodGroup:  "O+",
	}
}

func TestValidateCreatePatient(t *testing.T) {
	if errs := ValidateCreatePatient(validCreatePatient()); len(errs) > 0 {
		t.Fatalf("valid patient rejected: %v", errs)
	}
}

func TestCreatePatientRejectsFutureDOB(t *testing.T) {
	req := validCreatePatient()
	req.DateOfBirth = time.Now().AddDate(0, 0, 1)

	if errs := ValidateCreatePatient(req); len(errs) == 0 {
		t.Fatal("future date of birth should fail")
	}
}

func TestCreatePatientRejectsUnknownBloodGroup(t *testing.T) {
	req := validCreatePatient()
	req.BloodGroup = "C+"

	if errs := ValidateCreatePatient(req); len(errs) == 0 {
		t.Fatal("unknown blood group should fail")
	}
}

func TestCreatePatientRequiresCoordinatePair(t *testing.T) {
	lat := 22.57
	req := validCreatePatient()
	req.Latitude = &lat

	if errs := ValidateCreatePatient(req); len(errs) == 0 {
		t.Fatal("latitude without longitude should fail")
	}
}

func TestMedicalHistoryItemShape(t *testing.T) {
	ok := &MedicalHistoryItemRequest{Kind: "allergy", Name: "Penicillin", Severity: "severe"}
	if errs := ValidateMedicalHistoryItem(ok); len(errs) > 0 {
		t.Fatalf("valid item rejected: %v", errs)
	}

	badKind := &MedicalHistoryItemRequest{Kind: "surgery", Name: "Appendectomy"}
	if errs := ValidateMedicalHistoryItem(badKind); len(errs) == 0 {
		t.Fatal("unknown kind should fail")
	}

	badSeverity := &MedicalHistoryItemRequest{Kind: "allergy", Name: "Dust", Severity: "critical"}
	if errs := ValidateMedicalHistoryItem(badSeverity); len(errs) == 0 {
		t.Fatal("unknown severity should fail")
	}
}
