package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/handlers"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/infra/lock"
	infraRepo "github.com/IsacFSC/nutri-mobile-sub001/internal/infra/repository"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/middleware"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
	ucAppointment "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/appointment"
	ucPatient "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logging.Logger
	Locker   lock.Locker
	Audit    *audit.Dispatcher
	Registry *prometheus.Registry

	Scheduling *metrics.SchedulingMetrics
	HTTP       *metrics.HTTPMetrics

	// RedisPing is nil when the protocol lock is process-local.
	RedisPing handlers.PingFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log, d.HTTP),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	patientRepo := infraRepo.NewPatientGormRepository(d.DB)
	nutritionistRepo := infraRepo.NewNutritionistGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	settings := ucAppointment.Settings{
		SlotMinutes:      cfg.SlotMinutes,
		VideoCallBaseURL: cfg.VideoCallBaseURL,
	}

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Scheduling, settings)
	changeStatusUC := ucAppointment.NewChangeAppointmentStatus(appointmentRepo, d.Audit, d.Scheduling, settings)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	dashboardUC := ucAppointment.NewGetDashboard(appointmentRepo, settings)

	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	updateAvailabilityUC := ucAppointment.NewUpdateAvailability(appointmentRepo, d.Audit)
	slotsUC := ucAppointment.NewGetSlots(appointmentRepo, d.Scheduling, settings)

	// ======================================================
	// USE CASES: PATIENTS
	// ======================================================
	assigner := ucPatient.NewProtocolAssigner(
		patientRepo,
		d.Locker,
		d.Scheduling,
		d.Log,
		cfg.ProtocolPrefix,
		cfg.ProtocolMaxRetries,
	)
	createPatientUC := ucPatient.NewCreatePatient(patientRepo, assigner, d.Audit, d.Scheduling, nil)
	listPatientsUC := ucPatient.NewListPatients(patientRepo)
	getPatientUC := ucPatient.NewGetPatient(patientRepo)
	featuresUC := ucPatient.NewUpdateFeatures(patientRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		changeStatusUC,
		listByDateUC,
		listByMonthUC,
		dashboardUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, updateAvailabilityUC, slotsUC)
	patientHandler := handlers.NewPatientHandler(createPatientUC, listPatientsUC, getPatientUC, featuresUC)
	meHandler := handlers.NewMeHandler(nutritionistRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	publicHandler := handlers.NewPublicHandler(nutritionistRepo)

	healthHandler := handlers.NewHealthHandler(pingDB(d.DB), d.RedisPing, cfg.Env)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/nutritionists/:id", publicHandler.GetNutritionist)
			publicAPI.GET("/nutritionists/:id/slots", availabilityHandler.PublicSlots)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)

			secured.GET("/me/availability", availabilityHandler.Get)
			secured.PUT("/me/availability", availabilityHandler.Update)
			secured.GET("/me/slots", availabilityHandler.MySlots)

			secured.POST("/me/patients", patientHandler.Create)
			secured.GET("/me/patients", patientHandler.List)
			secured.GET("/me/patients/:id", patientHandler.Get)
			secured.PUT("/me/patients/:id/features", patientHandler.UpdateFeatures)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Transition(domain.StatusConfirmed))
			secured.PATCH("/me/appointments/:id/start", appointmentHandler.Transition(domain.StatusInProgress))
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Transition(domain.StatusCompleted))
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Transition(domain.StatusCancelled))
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.Transition(domain.StatusNoShow))
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.GET("/me/dashboard", appointmentHandler.Dashboard)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
