package validators

// CreateEmergencyRequestRequest is the patient-side creation payload. The
// request can be raised for the caller or on someone else's behalf; either
// way a reachable phone number and a location are mandatory.
type CreateEmergencyRequestRequest struct {
	ForSelf            bool    `json:"for_self"`
	PatientName        string  `json:"patient_name" validate:"required,min=2,max=100"`
	PatientPhoneNumber string  `json:"patient_phone_number" validate:"required,phone_number"`
	Longitude          float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude           float64 `json:"latitude" validate:"min=-90,max=90"`
	AmbulanceRequired  bool    `json:"is_ambulance_required"`
}

type FinalizeRequestRequest struct {
	HospitalID string `json:"hospital_id" validate:"required,object_id"`
}

func ValidateCreateEmergencyRequest(req *CreateEmergencyRequestRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// A zero-valued point is the Gulf of Guinea, not a plausible emergency.
	if req.Longitude == 0 && req.Latitude == 0 {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "Location coordinates are required",
		})
	}

	return errors
}

func ValidateFinalizeRequest(req *FinalizeRequestRequest) ValidationErrors {
	return ValidateStruct(req)
}
