package routes

import (
	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
	"lifeline/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupProfileRoutes wires hospital and patient profile management.
func SetupProfileRoutes(r *gin.RouterGroup, jwtSecret string, hospitalHandler *handlers.HospitalHandler, patientHandler *handlers.PatientHandler) {
	hospitals := r.Group("/hospitals")
	hospitals.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RoleHospital))
	{
		hospitals.POST("/profile", hospitalHandler.CreateProfile)
		hospitals.GET("/profile", hospitalHandler.GetProfile)
		hospitals.PUT("/profile", hospitalHandler.UpdateProfile)
		hospitals.PUT("/profile/beds", hospitalHandler.SetBedData)
		hospitals.PUT("/profile/blood", hospitalHandler.UpdateBloodInventory)
	}

	patients := r.Group("/patients")
	patients.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired(models.RolePatient))
	{
		patients.POST("/profile", patientHandler.CreateProfile)
		patients.GET("/profile", patientHandler.GetProfile)
		patients.PUT("/profile", patientHandler.UpdateProfile)
		patients.POST("/profile/medical-history", patientHandler.AddMedicalHistory)
		patients.DELETE("/profile/medical-history/:item_id", patientHandler.RemoveMedicalHistory)
	}
}
