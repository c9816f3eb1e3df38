package routes

import (
	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
	"lifeline/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupEmergencyRoutes wires the emergency request workflow. The patient side
// owns creation, finalization, and cancellation; the hospital side owns the
// nearby feed, acceptance, and resolution.
func SetupEmergencyRoutes(r *gin.RouterGroup, jwtSecret string, emergencyHandler *handlers.EmergencyHandler, hospitalHandler *handlers.HospitalHandler) {
	patient := r.Group("/emergency/requests")
	patient.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RolePatient))
	{
		patient.POST("", emergencyHandler.CreateRequest)
		patient.GET("", emergencyHandler.ListRequests)
		patient.GET("/:id/responses", emergencyHandler.GetResponses)
		patient.PUT("/:id/finalize", emergencyHandler.Finalize)
		patient.PUT("/:id/cancel", emergencyHandler.Cancel)
		patient.POST("/:id/photo", emergencyHandler.AttachPhoto)
	}

	hospital := r.Group("/emergency/hospital")
	hospital.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleHospital))
	{
		hospital.GET("/nearby", hospitalHandler.ListNearby)
		hospital.GET("/requests", hospitalHandler.ListRequests)
		hospital.PUT("/requests/:id/accept", hospitalHandler.Accept)
		hospital.PUT("/requests/:id/resolve", hospitalHandler.Resolve)
	}
}
