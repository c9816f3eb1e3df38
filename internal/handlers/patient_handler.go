package handlers

import (
	"lifeline/internal/middleware"
	"lifeline/internal/models"
	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"

	"github.com/gin-gonic/gin"
)

// PatientHandler manages patient profiles and their medical history.
type PatientHandler struct {
	patientService services.PatientService
}

func NewPatientHandler(patientService services.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// CreateProfile registers the patient profile
func (h *PatientHandler) CreateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.CreatePatientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateCreatePatient(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	patient, err := h.patientService.CreateProfile(c.Request.Context(), caller, &services.CreatePatientInput{
		Name:              request.Name,
		Email:             request.Email,
		PhoneNumber:       request.PhoneNumber,
		DateOfBirth:       request.DateOfBirth,
		BloodGroup:        models.BloodGroup(request.BloodGroup),
		Address:           toAddress(request.Address),
		EmergencyContacts: toEmergencyContacts(request.EmergencyContacts),
		Longitude:         request.Longitude,
		Latitude:          request.Latitude,
	})
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Patient profile created successfully", patient)
}

// GetProfile returns the caller's patient profile
func (h *PatientHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	patient, err := h.patientService.GetOwnProfile(c.Request.Context(), caller)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Patient profile retrieved successfully", patient)
}

// UpdateProfile applies partial profile edits
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.UpdatePatientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateUpdatePatient(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	input := &services.UpdatePatientInput{
		Name:        request.Name,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
		DateOfBirth: request.DateOfBirth,
		Longitude:   request.Longitude,
		Latitude:    request.Latitude,
	}
	if request.BloodGroup != nil {
		group := models.BloodGroup(*request.BloodGroup)
		input.BloodGroup = &group
	}
	if request.Address != nil {
		address := toAddress(*request.Address)
		input.Address = &address
	}
	if request.EmergencyContacts != nil {
		input.EmergencyContacts = toEmergencyContacts(request.EmergencyContacts)
	}

	patient, err := h.patientService.UpdateProfile(c.Request.Context(), caller, input)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Patient profile updated successfully", patient)
}

// AddMedicalHistory appends one history entry
func (h *PatientHandler) AddMedicalHistory(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.MedicalHistoryItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateMedicalHistoryItem(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	patient, err := h.patientService.AddMedicalHistory(c.Request.Context(), caller, models.MedicalHistoryItem{
		Kind:        models.MedicalHistoryKind(request.Kind),
		Name:        request.Name,
		Severity:    request.Severity,
		DiagnosedAt: request.DiagnosedAt,
		Reaction:    request.Reaction,
		BodyPart:    request.BodyPart,
		Notes:       request.Notes,
	})
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Medical history entry added successfully", patient)
}

// RemoveMedicalHistory deletes one history entry by ID
func (h *PatientHandler) RemoveMedicalHistory(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	itemID, err := objectIDParam(c, "item_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid history item ID")
		return
	}

	patient, err := h.patientService.RemoveMedicalHistory(c.Request.Context(), caller, itemID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Medical history entry removed successfully", patient)
}

func toEmergencyContacts(requests []validators.EmergencyContactRequest) []models.EmergencyContact {
	contacts := make([]models.EmergencyContact, 0, len(requests))
	for _, r := range requests {
		contacts = append(contacts, models.EmergencyContact{
			Name:        r.Name,
			Relation:    r.Relation,
			PhoneNumber: r.PhoneNumber,
		})
	}
	return contacts
}
