package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserRole string

const (
	RolePatient  UserRole = "patient"
	RoleHospital UserRole = "hospital"
	RoleAdmin    UserRole = "admin"
)

// Caller is the resolved identity of the account behind a request, produced by
// the auth middleware. Account registration and credential issuance live in a
// separate service; this one only consumes the token claims.
type Caller struct {
	ID   primitive.ObjectID `json:"id"`
	Role UserRole           `json:"role"`
}
