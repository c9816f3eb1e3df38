package validators

import "testing"

func validCreateHospital() *CreateHospitalRequest {
	return &CreateHospitalRequest{
		Name:          "City General",
		LicenseNumber: "WB-2024-0042",
		Type:          "MULTI_SPECIALITY",
		PhoneNumbers:  []PhoneNumberRequest{{Number: "+913322001100"}},
		Longitude:     88.4000,
		Latitude:      22.6000,
	}
}

func TestValidateCreateHospital(t *testing.T) {
	if errs := ValidateCreateHospital(validCreateHospital()); len(errs) > 0 {
		t.Fatalf("valid hospital rejected: %v", errs)
	}
}

func TestCreateHospitalRejectsUnknownType(t *testing.T) {
	req := validCreateHospital()
	req.Type = "FIELD_HOSPITAL"

	if errs := ValidateCreateHospital(req); len(errs) == 0 {
		t.Fatal("unknown hospital type should fail")
	}
}

func TestCreateHospitalRequiresPhoneNumber(t *testing.T) {
	req := validCreateHospital()
	req.PhoneNumbers = nil

	if errs := ValidateCreateHospital(req); len(errs) == 0 {
		t.Fatal("hospital without phone numbers should fail")
	}
}

func TestCreateHospitalRejectsBedOverflow(t *testing.T) {
	req := validCreateHospital()
	req.BedData = []BedDataRequest{{Category: "ICU", Total: 2, Available: 5}}

	if errs := ValidateCreateHospital(req); len(errs) == 0 {
		t.Fatal("available beds above total should fail")
	}
}

func TestUpdateHospitalRequiresCoordinatePair(t *testing.T) {
	lng := 88.41
	req := &UpdateHospitalRequest{Longitude: &lng}

	if errs := ValidateUpdateHospital(req); len(errs) == 0 {
		t.Fatal("longitude without latitude should fail")
	}

	lat := 22.61
	req.Latitude = &lat
	if errs := ValidateUpdateHospital(req); len(errs) > 0 {
		t.Fatalf("coordinate pair rejected: %v", errs)
	}
}
