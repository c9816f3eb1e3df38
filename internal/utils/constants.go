package utils

import "time"

// Application Constants
const (
	AppName    = "Lifeline"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Matching
	// Hospitals are screened against this radius both at request creation and
	// again at acceptance time. Fixed by configuration, not per-request.
	HospitalSearchRadiusKM     = 10.0
	HospitalSearchRadiusMeters = HospitalSearchRadiusKM * 1000

	// File upload
	MaxPhotoSize = 5 * 1024 * 1024 // 5MB
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheRequestPrefix  = "emergency_request:"
	CacheHospitalPrefix = "hospital:"
	CachePatientPrefix  = "patient:"
)

// File Types
var (
	AllowedImageTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

// Geographic Constants
const (
	EarthRadiusKM = 6371.0
)
