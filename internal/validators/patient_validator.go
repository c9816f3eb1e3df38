package validators

import "time"

type EmergencyContactRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Relation    string `json:"relation" validate:"omitempty,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_number"`
}

type CreatePatientRequest struct {
	Name              string                    `json:"name" validate:"required,min=2,max=100"`
	Email             string                    `json:"email" validate:"omitempty,email"`
	PhoneNumber       string                    `json:"phone_number" validate:"omitempty,phone_number"`
	DateOfBirth       time.Time                 `json:"dob" validate:"required,past_date"`
	BloodGroup        string                    `json:"blood_group" validate:"omitempty,blood_group"`
	Address           AddressRequest            `json:"address"`
	EmergencyContacts []EmergencyContactRequest `json:"emergency_contacts" validate:"omitempty,dive"`
	Longitude         *float64                  `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Latitude          *float64                  `json:"latitude" validate:"omitempty,min=-90,max=90"`
}

type UpdatePatientRequest struct {
	Name              *string                   `json:"name" validate:"omitempty,min=2,max=100"`
	Email             *string                   `json:"email" validate:"omitempty,email"`
	PhoneNumber       *string                   `json:"phone_number" validate:"omitempty,phone_number"`
	DateOfBirth       *time.Time                `json:"dob" validate:"omitempty,past_date"`
	BloodGroup        *string                   `json:"blood_group" validate:"omitempty,blood_group"`
	Address           *AddressRequest           `json:"address" validate:"omitempty"`
	EmergencyContacts []EmergencyContactRequest `json:"emergency_contacts" validate:"omitempty,dive"`
	Longitude         *float64                  `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Latitude          *float64                  `json:"latitude" validate:"omitempty,min=-90,max=90"`
}

// MedicalHistoryItemRequest is the tagged union over history kinds. Kind-level
// field rules are enforced by the service's lookup table; this only covers
// shape and ranges.
type MedicalHistoryItemRequest struct {
	Kind        string     `json:"kind" validate:"required,oneof=disease allergy injury"`
	Name        string     `json:"name" validate:"required,min=2,max=150"`
	Severity    string     `json:"severity" validate:"omitempty,oneof=mild moderate severe"`
	DiagnosedAt *time.Time `json:"diagnosed_at" validate:"omitempty,past_date"`
	Reaction    string     `json:"reaction" validate:"omitempty,max=255"`
	BodyPart    string     `json:"body_part" validate:"omitempty,max=100"`
	Notes       string     `json:"notes" validate:"omitempty,max=500"`
}

func ValidateCreatePatient(req *CreatePatientRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if (req.Longitude == nil) != (req.Latitude == nil) {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "Longitude and latitude must be provided together",
		})
	}

	return errors
}

func ValidateUpdatePatient(req *UpdatePatientRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if (req.Longitude == nil) != (req.Latitude == nil) {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "Longitude and latitude must be provided together",
		})
	}

	return errors
}

func ValidateMedicalHistoryItem(req *MedicalHistoryItemRequest) ValidationErrors {
	return ValidateStruct(req)
}
