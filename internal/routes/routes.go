package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// RegisterRoutes mounts the REST API under /api.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtSecret string, emitter ucAppointment.Emitter) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, emitter)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	updateStatusUC := ucAppointment.NewUpdateStatus(appointmentRepo, emitter)
	listMineUC := ucAppointment.NewListMine(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, jwtSecret)
	barberHandler := handlers.NewBarberHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, emitter)
	adminHandler := handlers.NewAdminHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		availabilityUC,
		updateStatusUC,
		listMineUC,
	)

	auth := middleware.AuthMiddleware(jwtSecret)
	barberOnly := middleware.RequireRole(string(models.RoleBarber))
	customerOnly := middleware.RequireRole(string(models.RoleCustomer))
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BARBERS
		// ------------------------------
		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/services", barberHandler.Services)
		api.GET("/barbers/:id/reviews", barberHandler.Reviews)
		api.GET("/barbers/:id/working-hours", barberHandler.WorkingHours)

		barber := api.Group("/barbers", auth, barberOnly)
		{
			barber.GET("/profile/me", barberHandler.MyProfile)
			barber.POST("/profile", barberHandler.CreateProfile)
			barber.PUT("/profile", barberHandler.UpdateProfile)

			barber.POST("/services", serviceHandler.Create)
			barber.PUT("/services/:id", serviceHandler.Update)
			barber.DELETE("/services/:id", serviceHandler.Delete)

			barber.PUT("/working-hours", workingHoursHandler.Update)
		}

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.GET("/appointments/barbers/:id/slots", appointmentHandler.Slots)

		appointments := api.Group("/appointments", auth)
		{
			appointments.POST("", customerOnly, appointmentHandler.Create)
			appointments.GET("", appointmentHandler.Mine)
			appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
			appointments.DELETE("/:id", appointmentHandler.Cancel)
		}

		api.POST("/reviews", auth, customerOnly, reviewHandler.Create)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin", auth, adminOnly)
		{
			admin.GET("/barbers/pending", adminHandler.Pending)
			admin.PATCH("/barbers/:id/approve", adminHandler.Approve)
			admin.PATCH("/barbers/:id/reject", adminHandler.Reject)
		}
	}
}
