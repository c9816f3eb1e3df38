package validators

import "testing"

func validCreateRequest() *CreateEmergencyRequestRequest {
	return &CreateEmergencyRequestRequest{
		ForSelf:            true,
		PatientName:        "Asha Rao",
		PatientPhoneNumber: "+919830012345",
		Longitude:          88.3639,
		Latitude:           22.5726,
	}
}

func TestValidateCreateEmergencyRequest(t *testing.T) {
	if errs := ValidateCreateEmergencyRequest(validCreateRequest()); len(errs) > 0 {
		t.Fatalf("valid request rejected: %v", errs)
	}
}

func TestCreateRequestRequiresName(t *testing.T) {
	req := validCreateRequest()
	req.PatientName = ""

	if errs := ValidateCreateEmergencyRequest(req); len(errs) == 0 {
		t.Fatal("missing patient name should fail")
	}
}

func TestCreateRequestRejectsBadPhone(t *testing.T) {
	req := validCreateRequest()
	req.PatientPhoneNumber = "98300"

	if errs := ValidateCreateEmergencyRequest(req); len(errs) == 0 {
		t.Fatal("non-E.164 phone number should fail")
	}
}

func TestCreateRequestRejectsZeroCoordinates(t *testing.T) {
	req := validCreateRequest()
	req.Longitude = 0
	req.Latitude = 0

	if errs := ValidateCreateEmergencyRequest(req); len(errs) == 0 {
		t.Fatal("zero-valued coordinates should fail")
	}
}

func TestCreateRequestRejectsOutOfRangeCoordinates(t *testing.T) {
	req := validCreateRequest()
	req.Latitude = 97.5

	if errs := ValidateCreateEmergencyRequest(req); len(errs) == 0 {
		t.Fatal("latitude beyond 90 should fail")
	}
}

func TestValidateFinalizeRequest(t *testing.T) {
	if errs := ValidateFinalizeRequest(&FinalizeRequestRequest{HospitalID: "64f1a2b3c4d5e6f708192a3b"}); len(errs) > 0 {
		t.Fatalf("valid hospital ID rejected: %v", errs)
	}

	if errs := ValidateFinalizeRequest(&FinalizeRequestRequest{HospitalID: "not-an-id"}); len(errs) == 0 {
		t.Fatal("malformed hospital ID should fail")
	}

	if errs := ValidateFinalizeRequest(&FinalizeRequestRequest{}); len(errs) == 0 {
		t.Fatal("missing hospital ID should fail")
	}
}
