package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HospitalType string

const (
	HospitalTypePHC             HospitalType = "PHC"
	HospitalTypeCHC             HospitalType = "CHC"
	HospitalTypeNursingHome     HospitalType = "NURSING_HOME"
	HospitalTypeClinic          HospitalType = "CLINIC"
	HospitalTypeMultiSpecialty  HospitalType = "MULTI_SPECIALITY"
	HospitalTypeSuperSpecialty  HospitalType = "SUPER_SPECIALITY"
	HospitalTypeOther           HospitalType = "OTHERS"
)

type PhoneNumber struct {
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Number string `json:"number" bson:"number" validate:"required"`
}

type Address struct {
	Line1      string `json:"line1,omitempty" bson:"line1,omitempty"`
	Locality   string `json:"locality,omitempty" bson:"locality,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
}

// BedData tracks availability for one ward category.
type BedData struct {
	Category  string `json:"category" bson:"category" validate:"required"`
	Total     int    `json:"total" bson:"total" validate:"min=0"`
	Available int    `json:"available" bson:"available" validate:"min=0"`
}

// BloodData tracks stock units per blood group.
type BloodData struct {
	Units map[string]int `json:"units" bson:"units"`
}

// TotalUnits is the derivation behind the hospital's blood-availability flag.
func (b BloodData) TotalUnits() int {
	total := 0
	for _, n := range b.Units {
		total += n
	}
	return total
}

// HospitalProfile is the hospital-side actor of the matching workflow. Its
// Location backs the 2dsphere candidate screening, and its ID is what gets
// appended to EmergencyRequest.AcceptedBy.
//
// BloodAvailable is never set directly by callers: it is recomputed from
// BloodData on every inventory write so the flag cannot drift from the stock.
type HospitalProfile struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Owner              primitive.ObjectID `json:"owner" bson:"owner" validate:"required"`
	Name               string             `json:"name" bson:"name" validate:"required"`
	LicenseNumber      string             `json:"license_number" bson:"license_number" validate:"required"`
	Type               HospitalType       `json:"type" bson:"type" validate:"required"`
	PhoneNumbers       []PhoneNumber      `json:"phone_numbers" bson:"phone_numbers"`
	Location           Location           `json:"location" bson:"location"`
	BedData            []BedData          `json:"bed_data" bson:"bed_data"`
	BloodData          BloodData          `json:"blood_data" bson:"blood_data"`
	Address            Address            `json:"address" bson:"address"`
	BloodAvailable     bool               `json:"is_blood_available" bson:"is_blood_available"`
	AmbulanceAvailable bool               `json:"is_ambulance_available" bson:"is_ambulance_available"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

func ValidHospitalType(t HospitalType) bool {
	switch t {
	case HospitalTypePHC, HospitalTypeCHC, HospitalTypeNursingHome, HospitalTypeClinic,
		HospitalTypeMultiSpecialty, HospitalTypeSuperSpecialty, HospitalTypeOther:
		return true
	}
	return false
}
