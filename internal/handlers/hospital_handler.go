package handlers

import (
	"lifeline/internal/middleware"
	"lifeline/internal/models"
	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"

	"github.com/gin-gonic/gin"
)

// HospitalHandler exposes the hospital side of the workflow: the emergency
// feed, accept and resolve, plus profile and inventory management.
type HospitalHandler struct {
	emergencyService services.EmergencyService
	hospitalService  services.HospitalService
}

func NewHospitalHandler(emergencyService services.EmergencyService, hospitalService services.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		emergencyService: emergencyService,
		hospitalService:  hospitalService,
	}
}

// Emergency workflow

// ListNearby returns pending requests around the hospital
func (h *HospitalHandler) ListNearby(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	requests, err := h.emergencyService.ListNearbyForHospital(c.Request.Context(), caller)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Nearby emergency requests retrieved successfully", map[string]interface{}{
		"requests": requests,
	})
}

// Accept volunteers the hospital for a pending or accepted request
func (h *HospitalHandler) Accept(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	requestID, err := objectIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	updated, err := h.emergencyService.Accept(c.Request.Context(), caller, requestID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Emergency request accepted successfully", updated)
}

// ListRequests returns the hospital's requests filtered by status
func (h *HospitalHandler) ListRequests(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	status := models.RequestStatus(c.Query("status"))

	views, err := h.emergencyService.ListForHospital(c.Request.Context(), caller, status)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Emergency requests retrieved successfully", map[string]interface{}{
		"requests": views,
	})
}

// Resolve closes a finalized request after care was delivered
func (h *HospitalHandler) Resolve(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	requestID, err := objectIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	updated, err := h.emergencyService.Resolve(c.Request.Context(), caller, requestID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Emergency request resolved successfully", updated)
}

// Profile management

// CreateProfile registers the hospital profile
func (h *HospitalHandler) CreateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.CreateHospitalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateCreateHospital(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	input := &services.CreateHospitalInput{
		Name:               request.Name,
		LicenseNumber:      request.LicenseNumber,
		Type:               models.HospitalType(request.Type),
		PhoneNumbers:       toPhoneNumbers(request.PhoneNumbers),
		Longitude:          request.Longitude,
		Latitude:           request.Latitude,
		Address:            toAddress(request.Address),
		BedData:            toBedData(request.BedData),
		AmbulanceAvailable: request.AmbulanceAvailable,
	}
	if request.BloodData != nil {
		input.BloodData = models.BloodData{Units: request.BloodData.Units}
	}

	hospital, err := h.hospitalService.CreateProfile(c.Request.Context(), caller, input)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Hospital profile created successfully", hospital)
}

// GetProfile returns the caller's hospital profile
func (h *HospitalHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	hospital, err := h.hospitalService.GetOwnProfile(c.Request.Context(), caller)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Hospital profile retrieved successfully", hospital)
}

// UpdateProfile applies partial profile edits
func (h *HospitalHandler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateUpdateHospital(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	input := &services.UpdateHospitalInput{
		Name:               request.Name,
		Longitude:          request.Longitude,
		Latitude:           request.Latitude,
		AmbulanceAvailable: request.AmbulanceAvailable,
	}
	if request.Type != nil {
		hospitalType := models.HospitalType(*request.Type)
		input.Type = &hospitalType
	}
	if request.PhoneNumbers != nil {
		input.PhoneNumbers = toPhoneNumbers(request.PhoneNumbers)
	}
	if request.Address != nil {
		address := toAddress(*request.Address)
		input.Address = &address
	}

	hospital, err := h.hospitalService.UpdateProfile(c.Request.Context(), caller, input)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Hospital profile updated successfully", hospital)
}

// SetBedData replaces the ward availability table
func (h *HospitalHandler) SetBedData(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.SetBedDataRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateSetBedData(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	hospital, err := h.hospitalService.SetBedData(c.Request.Context(), caller, toBedData(request.BedData))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Bed data updated successfully", hospital)
}

// UpdateBloodInventory replaces the blood stock and recomputes availability
func (h *HospitalHandler) UpdateBloodInventory(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.BloodDataRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	hospital, err := h.hospitalService.UpdateBloodInventory(c.Request.Context(), caller, models.BloodData{Units: request.Units})
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Blood inventory updated successfully", hospital)
}

func toPhoneNumbers(requests []validators.PhoneNumberRequest) []models.PhoneNumber {
	numbers := make([]models.PhoneNumber, 0, len(requests))
	for _, r := range requests {
		numbers = append(numbers, models.PhoneNumber{Label: r.Label, Number: r.Number})
	}
	return numbers
}

func toAddress(r validators.AddressRequest) models.Address {
	return models.Address{
		Line1:      r.Line1,
		Locality:   r.Locality,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
	}
}

func toBedData(requests []validators.BedDataRequest) []models.BedData {
	beds := make([]models.BedData, 0, len(requests))
	for _, r := range requests {
		beds = append(beds, models.BedData{Category: r.Category, Total: r.Total, Available: r.Available})
	}
	return beds
}
