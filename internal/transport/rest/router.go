package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/oltecnologia/analyst-management/internal/analyst"
	"github.com/oltecnologia/analyst-management/internal/auth"
	"github.com/oltecnologia/analyst-management/internal/salary"
	"github.com/oltecnologia/analyst-management/internal/transport/middleware"
	"github.com/oltecnologia/analyst-management/internal/transport/swagger"
	"github.com/oltecnologia/analyst-management/internal/user"
	"github.com/oltecnologia/analyst-management/internal/vacation"
)

// RegisterAllRoutes wires the full API surface. Every resource route runs the
// pipeline authenticate -> authorize -> validate -> store -> redact.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	analystHandler *analyst.Handler,
	vacationHandler *vacation.Handler,
	salaryHandler *salary.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Post("/logout", authHandler.Logout)
				pr.Get("/me", authHandler.Me)
			})
		})

		// Protected resources
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireRoles(auth.RoleAdmin))
				ar.Post("/users", userHandler.CreateUser)
			})

			pr.Route("/analysts", func(ar chi.Router) {
				// Reads are open to every authenticated role, redacted per role
				ar.Get("/", analystHandler.ListAnalysts)
				ar.Get("/{id}", analystHandler.GetAnalyst)
				ar.Get("/{id}/vacation-periods", vacationHandler.ListVacationPeriods)

				// Writes are admin/manager only
				ar.Group(func(mr chi.Router) {
					mr.Use(authHandler.RequireRoles(auth.RoleAdmin, auth.RoleManager))
					mr.Post("/", analystHandler.CreateAnalyst)
					mr.Put("/{id}", analystHandler.UpdateAnalyst)
					mr.Delete("/{id}", analystHandler.DeleteAnalyst)
					mr.Post("/{id}/vacation-periods", vacationHandler.CreateVacationPeriod)

					// Salary history is admin/manager for reads too
					mr.Get("/{id}/salary-history", salaryHandler.ListSalaryHistory)
					mr.Post("/{id}/salary-history", salaryHandler.CreateSalaryHistory)
				})
			})

			pr.Group(func(mr chi.Router) {
				mr.Use(authHandler.RequireRoles(auth.RoleAdmin, auth.RoleManager))
				mr.Delete("/vacation-periods/{id}", vacationHandler.DeleteVacationPeriod)
			})
		})
	})
}
