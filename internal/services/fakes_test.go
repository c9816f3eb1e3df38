package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
	"lifeline/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	log.SetOutput(io.Discard)
	return log
}

// fakeRequestRepo mirrors the store's conditional-update semantics in memory:
// each transition checks its precondition and applies under one lock, so the
// concurrency tests exercise the same atomicity contract the real store gives.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*models.EmergencyRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[primitive.ObjectID]*models.EmergencyRequest)}
}

func cloneRequest(r *models.EmergencyRequest) *models.EmergencyRequest {
	c := *r
	c.AcceptedBy = append([]primitive.ObjectID(nil), r.AcceptedBy...)
	if r.FinalizedHospital != nil {
		id := *r.FinalizedHospital
		c.FinalizedHospital = &id
	}
	if r.PatientProfile != nil {
		id := *r.PatientProfile
		c.PatientProfile = &id
	}
	return &c
}

func (f *fakeRequestRepo) Create(_ context.Context, request *models.EmergencyRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = cloneRequest(request)
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneRequest(request), nil
}

func (f *fakeRequestRepo) FindActiveByCreator(_ context.Context, creatorID primitive.ObjectID) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, request := range f.requests {
		if request.CreatedBy == creatorID && request.IsInFlight() {
			return cloneRequest(request), nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) Accept(_ context.Context, id, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if !request.IsInFlight() || request.FinalizedHospital != nil || request.HasAccepted(hospitalID) {
		return nil, interfaces.ErrPreconditionFailed
	}

	request.AcceptedBy = append(request.AcceptedBy, hospitalID)
	request.Status = models.RequestStatusAccepted
	request.UpdatedAt = time.Now()
	return cloneRequest(request), nil
}

func (f *fakeRequestRepo) Finalize(_ context.Context, id, creatorID, hospitalID, patientProfileID primitive.ObjectID) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if request.CreatedBy != creatorID || request.Status != models.RequestStatusAccepted ||
		request.FinalizedHospital != nil || !request.HasAccepted(hospitalID) {
		return nil, interfaces.ErrPreconditionFailed
	}

	hospital := hospitalID
	profile := patientProfileID
	request.FinalizedHospital = &hospital
	request.PatientProfile = &profile
	request.Status = models.RequestStatusFinalized
	request.UpdatedAt = time.Now()
	return cloneRequest(request), nil
}

func (f *fakeRequestRepo) Resolve(_ context.Context, id, hospitalID primitive.ObjectID) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if request.Status != models.RequestStatusFinalized ||
		request.FinalizedHospital == nil || *request.FinalizedHospital != hospitalID {
		return nil, interfaces.ErrPreconditionFailed
	}

	request.Status = models.RequestStatusResolved
	request.UpdatedAt = time.Now()
	return cloneRequest(request), nil
}

func (f *fakeRequestRepo) Cancel(_ context.Context, id, creatorID primitive.ObjectID) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	if request.CreatedBy != creatorID || request.IsTerminal() {
		return nil, interfaces.ErrPreconditionFailed
	}

	request.Status = models.RequestStatusCancelled
	request.UpdatedAt = time.Now()
	return cloneRequest(request), nil
}

func (f *fakeRequestRepo) SetPhoto(_ context.Context, id primitive.ObjectID, photoURL string) (*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	request.Photo = photoURL
	request.UpdatedAt = time.Now()
	return cloneRequest(request), nil
}

func (f *fakeRequestRepo) ListByCreatorAndStatus(_ context.Context, creatorID primitive.ObjectID, status models.RequestStatus, _ *utils.PaginationParams) ([]*models.EmergencyRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.EmergencyRequest
	for _, request := range f.requests {
		if request.CreatedBy == creatorID && request.Status == status {
			out = append(out, cloneRequest(request))
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ListNearbyPending(_ context.Context, location models.Location, radiusMeters float64, excludeHospitalID primitive.ObjectID) ([]*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.EmergencyRequest
	for _, request := range f.requests {
		if request.Status != models.RequestStatusPending || request.HasAccepted(excludeHospitalID) {
			continue
		}
		distKM := utils.CalculateDistance(
			location.Latitude(), location.Longitude(),
			request.Location.Latitude(), request.Location.Longitude(),
		)
		if distKM*1000 <= radiusMeters {
			out = append(out, cloneRequest(request))
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByAcceptedHospital(_ context.Context, hospitalID primitive.ObjectID, status models.RequestStatus) ([]*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.EmergencyRequest
	for _, request := range f.requests {
		if request.Status == status && request.HasAccepted(hospitalID) {
			out = append(out, cloneRequest(request))
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByFinalizedHospital(_ context.Context, hospitalID primitive.ObjectID, status models.RequestStatus) ([]*models.EmergencyRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.EmergencyRequest
	for _, request := range f.requests {
		if request.Status == status && request.FinalizedHospital != nil && *request.FinalizedHospital == hospitalID {
			out = append(out, cloneRequest(request))
		}
	}
	return out, nil
}

type fakeHospitalRepo struct {
	mu        sync.Mutex
	hospitals map[primitive.ObjectID]*models.HospitalProfile
}

func newFakeHospitalRepo() *fakeHospitalRepo {
	return &fakeHospitalRepo{hospitals: make(map[primitive.ObjectID]*models.HospitalProfile)}
}

func (f *fakeHospitalRepo) Create(_ context.Context, hospital *models.HospitalProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if hospital.ID.IsZero() {
		hospital.ID = primitive.NewObjectID()
	}
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = hospital.CreatedAt
	hospital.BloodAvailable = hospital.BloodData.TotalUnits() > 0
	copied := *hospital
	f.hospitals[hospital.ID] = &copied
	return nil
}

func (f *fakeHospitalRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.HospitalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hospital, ok := f.hospitals[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *hospital
	return &copied, nil
}

func (f *fakeHospitalRepo) GetByOwner(_ context.Context, ownerID primitive.ObjectID) (*models.HospitalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, hospital := range f.hospitals {
		if hospital.Owner == ownerID {
			copied := *hospital
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeHospitalRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.HospitalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.HospitalProfile
	for _, id := range ids {
		if hospital, ok := f.hospitals[id]; ok {
			copied := *hospital
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeHospitalRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	hospital, ok := f.hospitals[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		hospital.Name = name
	}
	if location, ok := updates["location"].(models.Location); ok {
		hospital.Location = location
	}
	hospital.UpdatedAt = time.Now()
	return nil
}

func (f *fakeHospitalRepo) FindNearby(_ context.Context, location models.Location, radiusMeters float64) ([]*models.HospitalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.HospitalProfile
	for _, hospital := range f.hospitals {
		distKM := utils.CalculateDistance(
			location.Latitude(), location.Longitude(),
			hospital.Location.Latitude(), hospital.Location.Longitude(),
		)
		if distKM*1000 <= radiusMeters {
			copied := *hospital
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeHospitalRepo) SetBedData(_ context.Context, id primitive.ObjectID, beds []models.BedData) (*models.HospitalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hospital, ok := f.hospitals[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	hospital.BedData = beds
	hospital.UpdatedAt = time.Now()
	copied := *hospital
	return &copied, nil
}

func (f *fakeHospitalRepo) SetBloodData(_ context.Context, id primitive.ObjectID, blood models.BloodData, available bool) (*models.HospitalProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hospital, ok := f.hospitals[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	hospital.BloodData = blood
	hospital.BloodAvailable = available
	hospital.UpdatedAt = time.Now()
	copied := *hospital
	return &copied, nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[primitive.ObjectID]*models.PatientProfile
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[primitive.ObjectID]*models.PatientProfile)}
}

func (f *fakePatientRepo) Create(_ context.Context, patient *models.PatientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	copied := *patient
	f.patients[patient.ID] = &copied
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	patient, ok := f.patients[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *patient
	return &copied, nil
}

func (f *fakePatientRepo) GetByOwner(_ context.Context, ownerID primitive.ObjectID) (*models.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, patient := range f.patients {
		if patient.Owner == ownerID {
			copied := *patient
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakePatientRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	patient, ok := f.patients[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		patient.Name = name
	}
	patient.UpdatedAt = time.Now()
	return nil
}

func (f *fakePatientRepo) AddMedicalHistoryItem(_ context.Context, ownerID primitive.ObjectID, item models.MedicalHistoryItem) (*models.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, patient := range f.patients {
		if patient.Owner == ownerID {
			item.ID = primitive.NewObjectID()
			item.RecordedAt = time.Now()
			patient.MedicalHistory = append(patient.MedicalHistory, item)
			patient.UpdatedAt = time.Now()
			copied := *patient
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakePatientRepo) RemoveMedicalHistoryItem(_ context.Context, ownerID, itemID primitive.ObjectID) (*models.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, patient := range f.patients {
		if patient.Owner == ownerID {
			kept := patient.MedicalHistory[:0]
			for _, entry := range patient.MedicalHistory {
				if entry.ID != itemID {
					kept = append(kept, entry)
				}
			}
			patient.MedicalHistory = kept
			patient.UpdatedAt = time.Now()
			copied := *patient
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []string
}

func (f *fakeStorage) Upload(_ context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads = append(f.uploads, request.Key)
	return &storage.UploadResponse{
		Key: request.Key,
		URL: fmt.Sprintf("https://cdn.example.com/%s", request.Key),
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	return nil
}
