package validators

type PhoneNumberRequest struct {
	Label  string `json:"label" validate:"omitempty,max=50"`
	Number string `json:"number" validate:"required,phone_number"`
}

type AddressRequest struct {
	Line1      string `json:"line1" validate:"omitempty,max=255"`
	Locality   string `json:"locality" validate:"omitempty,max=100"`
	City       string `json:"city" validate:"omitempty,max=100"`
	State      string `json:"state" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
}

type BedDataRequest struct {
	Category  string `json:"category" validate:"required,max=50"`
	Total     int    `json:"total" validate:"min=0"`
	Available int    `json:"available" validate:"min=0"`
}

type BloodDataRequest struct {
	Units map[string]int `json:"units" validate:"required"`
}

type CreateHospitalRequest struct {
	Name               string               `json:"name" validate:"required,min=2,max=150"`
	LicenseNumber      string               `json:"license_number" validate:"required,min=3,max=50"`
	Type               string               `json:"type" validate:"required,oneof=PHC CHC NURSING_HOME CLINIC MULTI_SPECIALITY SUPER_SPECIALITY OTHERS"`
	PhoneNumbers       []PhoneNumberRequest `json:"phone_numbers" validate:"required,min=1,dive"`
	Longitude          float64              `json:"longitude" validate:"min=-180,max=180"`
	Latitude           float64              `json:"latitude" validate:"min=-90,max=90"`
	Address            AddressRequest       `json:"address"`
	BedData            []BedDataRequest     `json:"bed_data" validate:"omitempty,dive"`
	BloodData          *BloodDataRequest    `json:"blood_data" validate:"omitempty"`
	AmbulanceAvailable bool                 `json:"is_ambulance_available"`
}

type UpdateHospitalRequest struct {
	Name               *string              `json:"name" validate:"omitempty,min=2,max=150"`
	Type               *string              `json:"type" validate:"omitempty,oneof=PHC CHC NURSING_HOME CLINIC MULTI_SPECIALITY SUPER_SPECIALITY OTHERS"`
	PhoneNumbers       []PhoneNumberRequest `json:"phone_numbers" validate:"omitempty,min=1,dive"`
	Longitude          *float64             `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Latitude           *float64             `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Address            *AddressRequest      `json:"address" validate:"omitempty"`
	AmbulanceAvailable *bool                `json:"is_ambulance_available"`
}

type SetBedDataRequest struct {
	BedData []BedDataRequest `json:"bed_data" validate:"required,dive"`
}

func ValidateCreateHospital(req *CreateHospitalRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.Longitude == 0 && req.Latitude == 0 {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "Location coordinates are required",
		})
	}

	for _, bed := range req.BedData {
		if bed.Available > bed.Total {
			errors = append(errors, ValidationError{
				Field:   "bed_data",
				Message: "Available beds cannot exceed total beds",
			})
			break
		}
	}

	return errors
}

func ValidateUpdateHospital(req *UpdateHospitalRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Coordinates only move as a pair.
	if (req.Longitude == nil) != (req.Latitude == nil) {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "Longitude and latitude must be provided together",
		})
	}

	return errors
}

func ValidateSetBedData(req *SetBedDataRequest) ValidationErrors {
	errors := ValidateStruct(req)

	for _, bed := range req.BedData {
		if bed.Available > bed.Total {
			errors = append(errors, ValidationError{
				Field:   "bed_data",
				Message: "Available beds cannot exceed total beds",
			})
			break
		}
	}

	return errors
}
