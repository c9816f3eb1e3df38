package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

func ValidBloodGroup(g BloodGroup) bool {
	switch g {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg:
		return true
	}
	return false
}

// MedicalHistoryKind tags the per-kind variants of a medical history item.
// Each kind carries its own validation rules; dispatch happens through a
// lookup table, not runtime field inspection.
type MedicalHistoryKind string

const (
	MedicalHistoryDisease MedicalHistoryKind = "disease"
	MedicalHistoryAllergy MedicalHistoryKind = "allergy"
	MedicalHistoryInjury  MedicalHistoryKind = "injury"
)

// MedicalHistoryItem is one tagged entry in a patient's history. Kind selects
// which of the detail fields are meaningful.
type MedicalHistoryItem struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind        MedicalHistoryKind `json:"kind" bson:"kind" validate:"required"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Severity    string             `json:"severity,omitempty" bson:"severity,omitempty"`
	DiagnosedAt *time.Time         `json:"diagnosed_at,omitempty" bson:"diagnosed_at,omitempty"`
	Reaction    string             `json:"reaction,omitempty" bson:"reaction,omitempty"`
	BodyPart    string             `json:"body_part,omitempty" bson:"body_part,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedAt  time.Time          `json:"recorded_at" bson:"recorded_at"`
}

type EmergencyContact struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Relation    string `json:"relation,omitempty" bson:"relation,omitempty"`
	PhoneNumber string `json:"phone_number" bson:"phone_number" validate:"required"`
}

// PatientProfile is attached to an emergency request at finalization so the
// committed hospital can see history and contacts.
type PatientProfile struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Owner             primitive.ObjectID   `json:"owner" bson:"owner" validate:"required"`
	Name              string               `json:"name" bson:"name"`
	Email             string               `json:"email,omitempty" bson:"email,omitempty"`
	Address           Address              `json:"address" bson:"address"`
	DateOfBirth       time.Time            `json:"dob" bson:"dob" validate:"required"`
	PhoneNumber       string               `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	BloodGroup        BloodGroup           `json:"blood_group,omitempty" bson:"blood_group,omitempty"`
	EmergencyContacts []EmergencyContact   `json:"emergency_contacts" bson:"emergency_contacts"`
	MedicalHistory    []MedicalHistoryItem `json:"medical_history" bson:"medical_history"`
	Location          Location             `json:"location" bson:"location"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at" bson:"updated_at"`
}

// Age derives from DateOfBirth; it is not stored.
func (p *PatientProfile) Age(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
