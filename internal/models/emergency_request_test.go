package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status   RequestStatus
		inFlight bool
		terminal bool
	}{
		{RequestStatusPending, true, false},
		{RequestStatusAccepted, true, false},
		{RequestStatusFinalized, false, false},
		{RequestStatusResolved, false, true},
		{RequestStatusCancelled, false, true},
	}

	for _, tt := range tests {
		r := &EmergencyRequest{Status: tt.status}
		if r.IsInFlight() != tt.inFlight {
			t.Errorf("%s: IsInFlight = %v, want %v", tt.status, r.IsInFlight(), tt.inFlight)
		}
		if r.IsTerminal() != tt.terminal {
			t.Errorf("%s: IsTerminal = %v, want %v", tt.status, r.IsTerminal(), tt.terminal)
		}
	}
}

func TestValidRequestStatus(t *testing.T) {
	for _, s := range []RequestStatus{RequestStatusPending, RequestStatusAccepted, RequestStatusFinalized, RequestStatusResolved, RequestStatusCancelled} {
		if !ValidRequestStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidRequestStatus("expired") {
		t.Error("unknown status should be invalid")
	}
	if ValidRequestStatus("") {
		t.Error("empty status should be invalid")
	}
}

func TestHasAccepted(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	r := &EmergencyRequest{AcceptedBy: []primitive.ObjectID{a}}

	if !r.HasAccepted(a) {
		t.Error("member should be reported accepted")
	}
	if r.HasAccepted(b) {
		t.Error("non-member should not be reported accepted")
	}
}

func TestLocationAccessors(t *testing.T) {
	loc := NewPoint(88.3639, 22.5726)

	if loc.Type != "Point" {
		t.Errorf("type = %q, want Point", loc.Type)
	}
	if loc.Longitude() != 88.3639 || loc.Latitude() != 22.5726 {
		t.Errorf("accessors returned (%v, %v)", loc.Longitude(), loc.Latitude())
	}
	if !loc.HasCoordinates() {
		t.Error("point should report coordinates")
	}

	var empty Location
	if empty.HasCoordinates() {
		t.Error("zero location should not report coordinates")
	}
}
