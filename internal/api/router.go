package api

import (
	"log/slog"
	"net/http"
	"time"

	"autohaus-crm/internal/api/handler"
	mw "autohaus-crm/internal/api/middleware"
	"autohaus-crm/internal/config"
	"autohaus-crm/internal/domain/clientexperience"
	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/domain/dashboard"
	"autohaus-crm/internal/domain/employee"
	"autohaus-crm/internal/domain/kaufvertrag"
	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/domain/user"
	"autohaus-crm/internal/domain/vehicle"
	"autohaus-crm/internal/importer"
	"autohaus-crm/internal/infrastructure/storage"

	_ "autohaus-crm/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Dependencies bundles everything the HTTP surface needs. All fields
// except BlobStore and the importers are mandatory.
type Dependencies struct {
	Customers        customer.CustomerService
	Vehicles         vehicle.VehicleService
	Employees        employee.EmployeeService
	Tasks            task.TaskService
	Cases            clientexperience.CaseService
	Kaufvertraege    kaufvertrag.KaufvertragService
	Users            user.UserService
	Dashboard        dashboard.DashboardService
	CustomerImporter *importer.CustomerImporter
	VehicleImporter  *importer.VehicleImporter
	BlobStore        storage.BlobStore
}

func SetupRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)

	// All resource routes live under /api; only the operational
	// endpoints (health, metrics, swagger) sit at the root.
	router.Route("/api", func(api chi.Router) {
		setupAuthRoutes(api, deps, cfg, logger)
		setupCustomerRoutes(api, deps, cfg, logger)
		setupVehicleRoutes(api, deps, cfg, logger)
		setupEmployeeRoutes(api, deps, cfg, logger)
		setupTaskRoutes(api, deps, cfg, logger)
		setupCaseRoutes(api, deps, cfg, logger)
		setupKaufvertragRoutes(api, deps, cfg, logger)
		setupUploadRoutes(api, deps, cfg, logger)
		setupDashboardRoutes(api, deps, cfg, logger)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(deps.Users, cfg.Server.Auth, logger)
	userHandler := handler.NewUserHandler(deps.Users, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
			r.Get("/me", authHandler.Me)
		})
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/", userHandler.ListUsers)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin(logger))
			r.Post("/", userHandler.CreateUser)
			r.Delete("/{userID}", userHandler.DeleteUser)
		})
	})
}

func setupCustomerRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCustomerHandler(deps.Customers, deps.CustomerImporter, cfg.Import, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Post("/import", h.ImportCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Post("/remarks", h.AddRemark)
			r.Post("/correspondence", h.AddCorrespondence)
		})
	})
}

func setupVehicleRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewVehicleHandler(deps.Vehicles, deps.VehicleImporter, cfg.Import, logger)

	router.Route("/vehicles", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateVehicle)
		r.Get("/", h.ListVehicles)
		r.Post("/import", h.ImportVehicles)
		r.Route("/{vehicleID}", func(r chi.Router) {
			r.Get("/", h.GetVehicle)
			r.Put("/", h.UpdateVehicle)
			r.Delete("/", h.DeleteVehicle)
		})
	})
}

func setupEmployeeRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewEmployeeHandler(deps.Employees, logger)

	router.Route("/employees", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateEmployee)
		r.Get("/", h.ListEmployees)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.GetEmployee)
			r.Put("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
		})
	})
}

func setupTaskRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewTaskHandler(deps.Tasks, logger)

	router.Route("/tasks", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/my", h.ListMyTasks)
		r.Route("/{taskID}", func(r chi.Router) {
			r.Put("/status", h.UpdateTaskStatus)
			r.Delete("/", h.DeleteTask)
		})
	})
}

func setupCaseRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCaseHandler(deps.Cases, logger)

	router.Route("/client-experience", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateCase)
		r.Get("/", h.ListCases)
		r.Route("/{caseID}", func(r chi.Router) {
			r.Get("/", h.GetCase)
			r.Post("/solution", h.AddSolution)
		})
	})
}

func setupKaufvertragRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewKaufvertragHandler(deps.Kaufvertraege, logger)

	router.Route("/kaufvertraege", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateKaufvertrag)
		r.Get("/", h.ListKaufvertraege)
		r.Route("/{kaufvertragID}", func(r chi.Router) {
			r.Get("/", h.GetKaufvertrag)
			r.Delete("/", h.DeleteKaufvertrag)
		})
	})
}

func setupUploadRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	if deps.BlobStore == nil {
		logger.Warn("Blob store not configured, upload routes disabled")
		return
	}
	h := handler.NewUploadHandler(deps.BlobStore, cfg.Uploads, logger)

	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/upload", h.Upload)
		r.Get("/uploads/{filename}", h.Download)
	})
}

func setupDashboardRoutes(router chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewDashboardHandler(deps.Dashboard, logger)

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/stats", h.GetStats)
	})
}
