package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusFinalized RequestStatus = "finalized"
	RequestStatusResolved  RequestStatus = "resolved"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// EmergencyRequest is the central record of the matching workflow. A patient
// broadcasts it, nearby hospitals append themselves to AcceptedBy, the patient
// commits to exactly one hospital, and that hospital closes the case.
//
// Location is immutable after creation. FinalizedHospital is set once and must
// be a member of AcceptedBy at the moment it is set. All status movement goes
// through the repository's conditional updates, never plain saves.
type EmergencyRequest struct {
	ID                 primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	CreatedBy          primitive.ObjectID   `json:"created_by" bson:"created_by" validate:"required"`
	ForSelf            bool                 `json:"for_self" bson:"for_self"`
	PatientName        string               `json:"patient_name" bson:"patient_name" validate:"required"`
	PatientPhoneNumber string               `json:"patient_phone_number" bson:"patient_phone_number" validate:"required"`
	Photo              string               `json:"photo,omitempty" bson:"photo,omitempty"`
	Location           Location             `json:"location" bson:"location" validate:"required"`
	AcceptedBy         []primitive.ObjectID `json:"accepted_by" bson:"accepted_by"`
	FinalizedHospital  *primitive.ObjectID  `json:"finalized_hospital" bson:"finalized_hospital"`
	PatientProfile     *primitive.ObjectID  `json:"patient_profile" bson:"patient_profile"`
	Status             RequestStatus        `json:"status" bson:"status"`
	AmbulanceRequired  bool                 `json:"is_ambulance_required" bson:"is_ambulance_required"`
	CreatedAt          time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at" bson:"updated_at"`
}

func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusFinalized,
		RequestStatusResolved, RequestStatusCancelled:
		return true
	}
	return false
}

// InFlightStatuses are the non-terminal pre-commit states. At most one request
// per creator may be in one of these at any time.
func InFlightStatuses() []RequestStatus {
	return []RequestStatus{RequestStatusPending, RequestStatusAccepted}
}

func (r *EmergencyRequest) IsTerminal() bool {
	return r.Status == RequestStatusResolved || r.Status == RequestStatusCancelled
}

func (r *EmergencyRequest) IsInFlight() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusAccepted
}

func (r *EmergencyRequest) HasAccepted(hospitalID primitive.ObjectID) bool {
	for _, id := range r.AcceptedBy {
		if id == hospitalID {
			return true
		}
	}
	return false
}

func (r *EmergencyRequest) IsFinalized() bool {
	return r.FinalizedHospital != nil
}
