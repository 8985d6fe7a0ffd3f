package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/api/handler"
	"github.com/jmaddox/groundops/internal/api/middleware"
	"github.com/jmaddox/groundops/internal/auth"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/service"
)

// Services bundles the service instances the router wires into handlers.
type Services struct {
	Schedule  *service.ScheduleService
	Customers *service.CustomerService
	Leads     *service.LeadService
	Contracts *service.ContractService
	Routing   *service.RoutingService
	Routes    *service.RouteService
	Intake    *service.IntakeService
	Users     *repository.UserRepository
	JWT       *auth.JWT
}

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - svc: wired service bundle.
//   - log: base logger for the request middleware.
//   - mode: Gin mode (debug, release, test).
//   - cors: CORS configuration.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(svc *Services, log *logger.Logger, mode string, cors middleware.CORSConfig) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	healthHandler := handler.NewHealthHandler()
	authHandler := handler.NewAuthHandler(svc.Users, svc.JWT)
	intakeHandler := handler.NewIntakeHandler(svc.Intake)
	jobHandler := handler.NewJobHandler(svc.Schedule)
	calendarHandler := handler.NewCalendarHandler(svc.Schedule)
	customerHandler := handler.NewCustomerHandler(svc.Customers)
	leadHandler := handler.NewLeadHandler(svc.Leads)
	contractHandler := handler.NewContractHandler(svc.Contracts)
	routeHandler := handler.NewRouteHandler(svc.Routing, svc.Routes, svc.Contracts, svc.Customers)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Public site forms
		v1.POST("/quotes", intakeHandler.SubmitQuote)
		v1.POST("/bookings", intakeHandler.SubmitBooking)

		// Authentication
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// Admin dashboard
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(svc.JWT))
		{
			admin.GET("/me", authHandler.Me)

			// Scheduled jobs
			admin.POST("/jobs", jobHandler.Create)
			admin.GET("/jobs", jobHandler.List)
			admin.GET("/jobs/watch", jobHandler.Watch)
			admin.GET("/jobs/:id", jobHandler.Get)
			admin.PUT("/jobs/:id", jobHandler.Update)
			admin.DELETE("/jobs/:id", jobHandler.Delete)
			admin.POST("/jobs/:id/toggle", jobHandler.Toggle)
			admin.DELETE("/jobs/:id/recurrence", jobHandler.RemoveRecurrence)

			// Calendar views
			admin.GET("/calendar/month", calendarHandler.Month)
			admin.GET("/calendar/week", calendarHandler.Week)
			admin.GET("/calendar/day", calendarHandler.Day)

			// Customers
			admin.POST("/customers", customerHandler.Create)
			admin.GET("/customers", customerHandler.List)
			admin.GET("/customers/:id", customerHandler.Get)
			admin.PUT("/customers/:id", customerHandler.Update)
			admin.DELETE("/customers/:id", customerHandler.Delete)

			// Leads
			admin.POST("/leads", leadHandler.Create)
			admin.GET("/leads", leadHandler.List)
			admin.GET("/leads/:id", leadHandler.Get)
			admin.PUT("/leads/:id", leadHandler.Update)
			admin.DELETE("/leads/:id", leadHandler.Delete)
			admin.POST("/leads/:id/contacted", leadHandler.MarkContacted)

			// Commercial contracts
			admin.POST("/contracts", contractHandler.CreateContract)
			admin.GET("/contracts", contractHandler.ListContracts)
			admin.GET("/contracts/:id", contractHandler.GetContract)
			admin.PUT("/contracts/:id", contractHandler.UpdateContract)
			admin.DELETE("/contracts/:id", contractHandler.DeleteContract)

			// HOA/condo properties
			admin.POST("/properties", contractHandler.CreateProperty)
			admin.GET("/properties", contractHandler.ListProperties)
			admin.GET("/properties/:id", contractHandler.GetProperty)
			admin.PUT("/properties/:id", contractHandler.UpdateProperty)
			admin.DELETE("/properties/:id", contractHandler.DeleteProperty)

			// Routes
			admin.GET("/geocode", routeHandler.ResolveAddress)
			admin.POST("/routes/optimize", routeHandler.Optimize)
			admin.POST("/routes", routeHandler.Save)
			admin.GET("/routes", routeHandler.List)
			admin.GET("/routes/:id", routeHandler.Get)
			admin.DELETE("/routes/:id", routeHandler.Delete)
			admin.POST("/routes/:id/stops/:stopID/toggle", routeHandler.ToggleStop)

			// Intake listings
			admin.GET("/quotes", intakeHandler.ListQuotes)
			admin.GET("/bookings", intakeHandler.ListBookings)
		}
	}

	return r
}
