package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"paysheet/app"
)

// App is the HTTP application: a chi router over the three services.
type App struct {
	router     *chi.Mux
	companies  *app.CompanyService
	employees  *app.EmployeeService
	attendance *app.AttendanceService
	server     *http.Server
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates a new HTTP application
func NewApp(config Config, companies *app.CompanyService, employees *app.EmployeeService, attendance *app.AttendanceService) *App {
	a := &App{
		router:     chi.NewRouter(),
		companies:  companies,
		employees:  employees,
		attendance: attendance,
	}

	a.setupMiddleware()
	a.setupRoutes()

	a.server = &http.Server{
		Addr:         ":" + config.Port,
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Route("/companies", func(r chi.Router) {
		r.Post("/", a.handleCreateCompany)
		r.Route("/{companyID}", func(r chi.Router) {
			r.Get("/", a.handleGetCompany)
			r.Put("/salary-format", a.handleUpdateSalaryFormat)
			r.Post("/salary-format/extract", a.handleExtractSalaryFormat)
			r.Post("/salary-template", a.handleImportFormulaTemplates)
			r.Get("/template", a.handleBlankTemplate)
			r.Get("/sample-template", a.handleSampleTemplate)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", a.handleListEmployees)
				r.Post("/upload", a.handleUploadEmployees)
				r.Get("/stats", a.handleEmployeeStats)
				r.Get("/export", a.handleExportEmployees)
				r.Get("/{employeeID}", a.handleGetEmployee)
				r.Put("/{employeeID}", a.handleUpdateEmployee)
				r.Delete("/{employeeID}", a.handleDeleteEmployee)
			})

			r.Get("/attendance", a.handleListAttendance)
			r.Get("/attendance/{employeeID}/summary", a.handleAttendanceSummary)
		})
	})

	a.router.Post("/employees", a.handleAddEmployee)

	a.router.Route("/attendance", func(r chi.Router) {
		r.Post("/", a.handleMarkAttendance)
		r.Post("/bulk", a.handleBulkMarkAttendance)
		r.Put("/{recordID}", a.handleUpdateAttendance)
		r.Delete("/{recordID}", a.handleDeleteAttendance)
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start starts the HTTP server and blocks until it stops.
func (a *App) Start() error {
	log.Printf("[HTTP] listening on %s", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
