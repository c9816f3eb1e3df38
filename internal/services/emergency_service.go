package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"lifeline/internal/apperrors"
	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
	"lifeline/pkg/maps"
	"lifeline/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateRequestInput carries the patient-side creation payload after binding
// and validation.
type CreateRequestInput struct {
	ForSelf            bool
	PatientName        string
	PatientPhoneNumber string
	Longitude          float64
	Latitude           float64
	AmbulanceRequired  bool
}

// HospitalResponsesView is the patient's view of who has answered: the full
// candidate detail (beds, blood, address) plus the committed hospital if any.
type HospitalResponsesView struct {
	Request    *models.EmergencyRequest  `json:"request"`
	Candidates []*models.HospitalProfile `json:"candidates"`
	Finalized  *models.HospitalProfile   `json:"finalized_hospital,omitempty"`
}

// HospitalRequestView pairs a request with the patient profile attached at
// finalization. The profile is only populated for finalized/resolved listings.
type HospitalRequestView struct {
	Request        *models.EmergencyRequest `json:"request"`
	PatientProfile *models.PatientProfile   `json:"patient_profile,omitempty"`
}

// EmergencyService owns the request state machine: every legal transition,
// its guards, and its side effects. Guards run in a fixed order, so a caller
// always gets the most specific rejection: authorization before status,
// status before distance. The repositories' conditional updates are what make
// the transitions safe under concurrency; the pre-checks here exist to
// produce precise errors, not to provide atomicity.
type EmergencyService interface {
	CreateRequest(ctx context.Context, caller models.Caller, input *CreateRequestInput) (*models.EmergencyRequest, error)
	ListForPatient(ctx context.Context, caller models.Caller, status models.RequestStatus, params *utils.PaginationParams) ([]*models.EmergencyRequest, int64, error)
	HospitalResponses(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*HospitalResponsesView, error)
	Finalize(ctx context.Context, caller models.Caller, requestID, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error)
	Cancel(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*models.EmergencyRequest, bool, error)
	AttachPhoto(ctx context.Context, caller models.Caller, requestID primitive.ObjectID, filename, contentType string, size int64, reader io.Reader) (*models.EmergencyRequest, error)

	ListNearbyForHospital(ctx context.Context, caller models.Caller) ([]*models.EmergencyRequest, error)
	Accept(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*models.EmergencyRequest, error)
	ListForHospital(ctx context.Context, caller models.Caller, status models.RequestStatus) ([]*HospitalRequestView, error)
	Resolve(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*models.EmergencyRequest, error)
}

type emergencyService struct {
	requestRepo  interfaces.EmergencyRequestRepository
	hospitalRepo interfaces.HospitalRepository
	patientRepo  interfaces.PatientRepository
	matching     MatchingService
	storage      storage.Provider
	geocoder     maps.Geocoder
	logger       *logger.Logger
}

func NewEmergencyService(
	requestRepo interfaces.EmergencyRequestRepository,
	hospitalRepo interfaces.HospitalRepository,
	patientRepo interfaces.PatientRepository,
	matching MatchingService,
	storageProvider storage.Provider,
	geocoder maps.Geocoder,
	log *logger.Logger,
) EmergencyService {
	return &emergencyService{
		requestRepo:  requestRepo,
		hospitalRepo: hospitalRepo,
		patientRepo:  patientRepo,
		matching:     matching,
		storage:      storageProvider,
		geocoder:     geocoder,
		logger:       log,
	}
}

func requireRole(caller models.Caller, roles ...models.UserRole) error {
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	return apperrors.Authorization("your role is not permitted to perform this operation")
}

// Patient side

func (s *emergencyService) CreateRequest(ctx context.Context, caller models.Caller, input *CreateRequestInput) (*models.EmergencyRequest, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	if input.PatientName == "" || input.PatientPhoneNumber == "" {
		return nil, apperrors.Validation("patient name, phone number, and location coordinates are required")
	}
	if !utils.IsValidCoordinates(input.Latitude, input.Longitude) {
		return nil, apperrors.Validation("location coordinates are out of range")
	}

	existing, err := s.requestRepo.FindActiveByCreator(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.Dependency(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("you already have an ongoing emergency request")
	}

	location := models.NewPoint(input.Longitude, input.Latitude)

	candidates, err := s.matching.CandidatesWithin(ctx, location, s.matching.Radius())
	if err != nil {
		return nil, apperrors.Dependency(err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NotFoundMsg(fmt.Sprintf("no hospitals found within %.0fkm", s.matching.Radius()))
	}

	s.enrichLocation(ctx, &location)

	request := &models.EmergencyRequest{
		CreatedBy:          caller.ID,
		ForSelf:            input.ForSelf,
		PatientName:        input.PatientName,
		PatientPhoneNumber: input.PatientPhoneNumber,
		Location:           location,
		Status:             models.RequestStatusPending,
		AmbulanceRequired:  input.AmbulanceRequired,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, apperrors.Dependency(err)
	}

	s.logger.LogTransition(request.ID, "created", map[string]interface{}{
		"created_by": caller.ID.Hex(),
		"candidates": len(candidates),
	})

	return request, nil
}

// enrichLocation fills in a display address via reverse geocoding. Failures
// are logged and ignored; matching never depends on the address.
func (s *emergencyService) enrichLocation(ctx context.Context, location *models.Location) {
	if s.geocoder == nil {
		return
	}

	result, err := s.geocoder.ReverseGeocode(ctx, location.Latitude(), location.Longitude())
	if err != nil {
		s.logger.WithError(err).Debug("reverse geocoding skipped")
		return
	}

	location.Address = result.Address
	location.City = result.City
	location.State = result.State
	location.Country = result.Country
	location.PostalCode = result.PostalCode
}

func (s *emergencyService) ListForPatient(ctx context.Context, caller models.Caller, status models.RequestStatus, params *utils.PaginationParams) ([]*models.EmergencyRequest, int64, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, 0, err
	}
	if !models.ValidRequestStatus(status) {
		return nil, 0, apperrors.Validation("invalid or missing status")
	}

	requests, total, err := s.requestRepo.ListByCreatorAndStatus(ctx, caller.ID, status, params)
	if err != nil {
		return nil, 0, apperrors.Dependency(err)
	}

	return requests, total, nil
}

func (s *emergencyService) HospitalResponses(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*HospitalResponsesView, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.CreatedBy != caller.ID {
		return nil, apperrors.Authorization("you are not authorized to view this request")
	}

	candidates, err := s.hospitalRepo.GetByIDs(ctx, request.AcceptedBy)
	if err != nil {
		return nil, apperrors.Dependency(err)
	}

	view := &HospitalResponsesView{
		Request:    request,
		Candidates: candidates,
	}

	if request.FinalizedHospital != nil {
		for _, h := range candidates {
			if h.ID == *request.FinalizedHospital {
				view.Finalized = h
				break
			}
		}
		if view.Finalized == nil {
			finalized, err := s.hospitalRepo.GetByID(ctx, *request.FinalizedHospital)
			if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
				return nil, apperrors.Dependency(err)
			}
			view.Finalized = finalized
		}
	}

	return view, nil
}

func (s *emergencyService) Finalize(ctx context.Context, caller models.Caller, requestID, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.CreatedBy != caller.ID {
		return nil, apperrors.Authorization("you are not authorized to finalize this request")
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, apperrors.Conflict("request is not in accepted state")
	}
	if !request.HasAccepted(hospitalID) {
		return nil, apperrors.Validation("selected hospital has not accepted the request")
	}

	if _, err := s.hospitalRepo.GetByID(ctx, hospitalID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital")
		}
		return nil, apperrors.Dependency(err)
	}

	patientProfile, err := s.patientRepo.GetByOwner(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("patient profile")
		}
		return nil, apperrors.Dependency(err)
	}

	updated, err := s.requestRepo.Finalize(ctx, requestID, caller.ID, hospitalID, patientProfile.ID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			return nil, apperrors.NotFound("emergency request")
		case errors.Is(err, interfaces.ErrPreconditionFailed):
			// Lost the race: someone finalized or cancelled in between.
			return nil, apperrors.Conflict("request is no longer in accepted state")
		default:
			return nil, apperrors.Dependency(err)
		}
	}

	s.logger.LogTransition(requestID, "finalized", map[string]interface{}{
		"hospital_id": hospitalID.Hex(),
	})

	return updated, nil
}

// Cancel is idempotent: cancelling an already-terminal request succeeds
// without mutating anything, since a network retry or double-tap must never
// error. The bool reports whether a mutation actually happened.
func (s *emergencyService) Cancel(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*models.EmergencyRequest, bool, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, false, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, false, err
	}
	if request.CreatedBy != caller.ID {
		return nil, false, apperrors.Authorization("you are not authorized to cancel this request")
	}
	if request.IsTerminal() {
		return request, false, nil
	}

	updated, err := s.requestRepo.Cancel(ctx, requestID, caller.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrPreconditionFailed) {
			// Raced with a resolve or another cancel; both are terminal, so
			// report idempotent success with the current state.
			current, getErr := s.getRequest(ctx, requestID)
			if getErr != nil {
				return nil, false, getErr
			}
			if current.IsTerminal() {
				return current, false, nil
			}
			return nil, false, apperrors.Conflict("request could not be cancelled")
		}
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, false, apperrors.NotFound("emergency request")
		}
		return nil, false, apperrors.Dependency(err)
	}

	s.logger.LogTransition(requestID, "cancelled", nil)

	return updated, true, nil
}

func (s *emergencyService) AttachPhoto(ctx context.Context, caller models.Caller, requestID primitive.ObjectID, filename, contentType string, size int64, reader io.Reader) (*models.EmergencyRequest, error) {
	if err := requireRole(caller, models.RolePatient); err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.CreatedBy != caller.ID {
		return nil, apperrors.Authorization("you are not authorized to modify this request")
	}

	if size > utils.MaxPhotoSize {
		return nil, apperrors.Validation("image exceeds the maximum allowed size")
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if !isAllowedImageType(ext) {
		return nil, apperrors.Validationf("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("emergency_requests/%s/%s.%s", requestID.Hex(), uuid.NewString(), ext)
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return nil, apperrors.Dependency(err)
	}

	updated, err := s.requestRepo.SetPhoto(ctx, requestID, uploaded.URL)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("emergency request")
		}
		return nil, apperrors.Dependency(err)
	}

	return updated, nil
}

// Hospital side

func (s *emergencyService) ListNearbyForHospital(ctx context.Context, caller models.Caller) ([]*models.EmergencyRequest, error) {
	if err := requireRole(caller, models.RoleHospital); err != nil {
		return nil, err
	}

	hospital, err := s.getHospitalByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if !hospital.Location.HasCoordinates() {
		return nil, apperrors.NotFoundMsg("hospital profile location not set")
	}

	requests, err := s.requestRepo.ListNearbyPending(ctx, hospital.Location, s.matching.Radius()*1000, hospital.ID)
	if err != nil {
		return nil, apperrors.Dependency(err)
	}

	return requests, nil
}

func (s *emergencyService) Accept(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*models.EmergencyRequest, error) {
	if err := requireRole(caller, models.RoleHospital); err != nil {
		return nil, err
	}

	hospital, err := s.getHospitalByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsInFlight() {
		return nil, apperrors.Conflict("this emergency request is no longer available for acceptance")
	}
	if request.IsFinalized() {
		return nil, apperrors.Conflict("this emergency request has already been finalized")
	}
	if request.HasAccepted(hospital.ID) {
		return nil, apperrors.Conflict("you have already accepted this request")
	}
	if !s.matching.IsWithin(request.Location, hospital, s.matching.Radius()) {
		return nil, apperrors.OutOfRange("you are too far from this emergency request to accept it")
	}

	updated, err := s.requestRepo.Accept(ctx, requestID, hospital.ID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			return nil, apperrors.NotFound("emergency request")
		case errors.Is(err, interfaces.ErrPreconditionFailed):
			return nil, s.classifyAcceptConflict(ctx, requestID, hospital.ID)
		default:
			return nil, apperrors.Dependency(err)
		}
	}

	s.logger.LogTransition(requestID, "accepted", map[string]interface{}{
		"hospital_id": hospital.ID.Hex(),
		"accepted":    len(updated.AcceptedBy),
	})

	return updated, nil
}

// classifyAcceptConflict re-reads the record after a lost conditional update
// so the hospital gets the specific reason rather than a generic conflict.
func (s *emergencyService) classifyAcceptConflict(ctx context.Context, requestID, hospitalID primitive.ObjectID) error {
	current, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if current.HasAccepted(hospitalID) {
		return apperrors.Conflict("you have already accepted this request")
	}
	return apperrors.Conflict("this emergency request is no longer available for acceptance")
}

func (s *emergencyService) ListForHospital(ctx context.Context, caller models.Caller, status models.RequestStatus) ([]*HospitalRequestView, error) {
	if err := requireRole(caller, models.RoleHospital); err != nil {
		return nil, err
	}

	switch status {
	case models.RequestStatusAccepted, models.RequestStatusFinalized,
		models.RequestStatusResolved, models.RequestStatusCancelled:
	default:
		return nil, apperrors.Validation("invalid or missing status")
	}

	hospital, err := s.getHospitalByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	var requests []*models.EmergencyRequest
	finalizedView := status == models.RequestStatusFinalized || status == models.RequestStatusResolved
	if finalizedView {
		requests, err = s.requestRepo.ListByFinalizedHospital(ctx, hospital.ID, status)
	} else {
		requests, err = s.requestRepo.ListByAcceptedHospital(ctx, hospital.ID, status)
	}
	if err != nil {
		return nil, apperrors.Dependency(err)
	}

	views := make([]*HospitalRequestView, 0, len(requests))
	for _, request := range requests {
		view := &HospitalRequestView{Request: request}
		// The committed hospital gets the patient detail attached at
		// finalization; pre-commit candidates do not.
		if finalizedView && request.PatientProfile != nil {
			profile, err := s.patientRepo.GetByID(ctx, *request.PatientProfile)
			if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
				return nil, apperrors.Dependency(err)
			}
			view.PatientProfile = profile
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *emergencyService) Resolve(ctx context.Context, caller models.Caller, requestID primitive.ObjectID) (*models.EmergencyRequest, error) {
	if err := requireRole(caller, models.RoleHospital); err != nil {
		return nil, err
	}

	hospital, err := s.getHospitalByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.FinalizedHospital == nil || *request.FinalizedHospital != hospital.ID {
		return nil, apperrors.Authorization("only the finalized hospital can resolve this request")
	}
	if request.Status != models.RequestStatusFinalized {
		return nil, apperrors.Conflict("request is not in finalized state")
	}

	updated, err := s.requestRepo.Resolve(ctx, requestID, hospital.ID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			return nil, apperrors.NotFound("emergency request")
		case errors.Is(err, interfaces.ErrPreconditionFailed):
			return nil, apperrors.Conflict("request is no longer in finalized state")
		default:
			return nil, apperrors.Dependency(err)
		}
	}

	s.logger.LogTransition(requestID, "resolved", map[string]interface{}{
		"hospital_id": hospital.ID.Hex(),
	})

	return updated, nil
}

// Shared lookups

func (s *emergencyService) getRequest(ctx context.Context, id primitive.ObjectID) (*models.EmergencyRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("emergency request")
		}
		return nil, apperrors.Dependency(err)
	}
	return request, nil
}

func (s *emergencyService) getHospitalByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.HospitalProfile, error) {
	hospital, err := s.hospitalRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, apperrors.NotFound("hospital profile")
		}
		return nil, apperrors.Dependency(err)
	}
	return hospital, nil
}

func isAllowedImageType(ext string) bool {
	for _, allowed := range utils.AllowedImageTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
