package handlers

import (
	"lifeline/internal/middleware"
	"lifeline/internal/models"
	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmergencyHandler exposes the patient side of the request workflow.
type EmergencyHandler struct {
	emergencyService services.EmergencyService
}

func NewEmergencyHandler(emergencyService services.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyService: emergencyService,
	}
}

// CreateRequest broadcasts a new emergency request
func (h *EmergencyHandler) CreateRequest(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.CreateEmergencyRequestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateEmergencyRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	created, err := h.emergencyService.CreateRequest(c.Request.Context(), caller, &services.CreateRequestInput{
		ForSelf:            request.ForSelf,
		PatientName:        request.PatientName,
		PatientPhoneNumber: request.PatientPhoneNumber,
		Longitude:          request.Longitude,
		Latitude:           request.Latitude,
		AmbulanceRequired:  request.AmbulanceRequired,
	})
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Emergency request created successfully", created)
}

// ListRequests returns the caller's requests filtered by status
func (h *EmergencyHandler) ListRequests(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	status := models.RequestStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	requests, total, err := h.emergencyService.ListForPatient(c.Request.Context(), caller, status, params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Emergency requests retrieved successfully", map[string]interface{}{
		"requests": requests,
	}, meta)
}

// GetResponses returns the hospitals that have accepted the request
func (h *EmergencyHandler) GetResponses(c *gin.Context) {
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

	view, err := h.emergencyService.HospitalResponses(c.Request.Context(), caller, requestID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Hospital responses retrieved successfully", view)
}

// Finalize commits the request to one accepting hospital
func (h *EmergencyHandler) Finalize(c *gin.Context) {
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

	var request validators.FinalizeRequestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateFinalizeRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	hospitalID, _ := primitive.ObjectIDFromHex(request.HospitalID)

	updated, err := h.emergencyService.Finalize(c.Request.Context(), caller, requestID, hospitalID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Emergency request finalized successfully", updated)
}

// Cancel withdraws the request. Cancelling an already-closed request is a
// no-op success.
func (h *EmergencyHandler) Cancel(c *gin.Context) {
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

	updated, changed, err := h.emergencyService.Cancel(c.Request.Context(), caller, requestID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	message := "Emergency request cancelled successfully"
	if !changed {
		message = "Emergency request already " + string(updated.Status)
	}

	utils.SuccessResponse(c, message, updated)
}

// AttachPhoto uploads a photo and links it to the request
func (h *EmergencyHandler) AttachPhoto(c *gin.Context) {
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

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.BadRequestResponse(c, "Photo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read photo file")
		return
	}
	defer file.Close()

	updated, err := h.emergencyService.AttachPhoto(
		c.Request.Context(),
		caller,
		requestID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Photo attached successfully", updated)
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param(name))
}

func validationDetails(errs validators.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field] = err.Message
	}
	return details
}
