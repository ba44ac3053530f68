package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"

	"github.com/campushub/records-portal/internal/auth"
	"github.com/campushub/records-portal/internal/hierarchy"
	"github.com/campushub/records-portal/internal/person"
	"github.com/campushub/records-portal/internal/registration"
	"github.com/campushub/records-portal/internal/transport/middleware"
	"github.com/campushub/records-portal/internal/transport/swagger"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	redisClient *redis.Client,
	authHandler *auth.Handler,
	hierarchyHandler *hierarchy.Handler,
	registrationHandler *registration.Handler,
	personHandler *person.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db, redisClient)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// hierarchy selectors are public: registration forms refresh them
		// before any session exists
		if hierarchyHandler != nil {
			r.Route("/hierarchy", func(hr chi.Router) {
				hr.Get("/universities", hierarchyHandler.GetUniversities)
				hr.Get("/institutes", hierarchyHandler.GetInstitutes)
				hr.Get("/programs", hierarchyHandler.GetPrograms)
				hr.Get("/branches", hierarchyHandler.GetBranches)
			})
		}

		if authHandler != nil {
			r.Route("/auth", func(ar chi.Router) {
				ar.Get("/login", authHandler.GetLogin)
				ar.Post("/login", authHandler.PostLogin)
				ar.Post("/verify-otp/{email}", authHandler.VerifyOtp)

				ar.Group(func(sr chi.Router) {
					sr.Use(authHandler.AuthMiddleware)
					sr.With(authHandler.RequireScope(auth.ScopeFull, auth.ScopePasswordChange)).
						Post("/change-password", authHandler.ChangePassword)
					sr.Post("/logout", authHandler.Logout)
					sr.Get("/session", authHandler.GetSession)
				})
			})
		}

		if authHandler != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// gated profile completion runs on the scoped setup session;
				// a full session may also re-reach it before the person row
				// exists
				if personHandler != nil {
					pr.Route("/people", func(plr chi.Router) {
						plr.With(authHandler.RequireScope(auth.ScopeProfileSetup, auth.ScopeFull)).
							Post("/students/profile", personHandler.CompleteStudentProfile)
						plr.With(authHandler.RequireScope(auth.ScopeProfileSetup, auth.ScopeFull)).
							Post("/employees/profile", personHandler.CompleteEmployeeProfile)

						plr.Group(func(fr chi.Router) {
							fr.Use(authHandler.RequireScope(auth.ScopeFull))
							fr.Get("/me", personHandler.Me)

							fr.Group(func(ar chi.Router) {
								ar.Use(authHandler.RequireStaff)
								ar.Get("/students", personHandler.ListStudents)
								ar.Get("/students/{id}", personHandler.GetStudent)
								ar.Get("/employees", personHandler.ListEmployees)
								ar.Get("/employees/{id}", personHandler.GetEmployee)
							})
						})
					})
				}

				if registrationHandler != nil {
					pr.Group(func(rr chi.Router) {
						rr.Use(authHandler.RequireScope(auth.ScopeFull))
						rr.Use(authHandler.RequireStaff)
						rr.Route("/registration", func(reg chi.Router) {
							reg.Post("/students", registrationHandler.RegisterStudent)
							reg.Post("/employees", registrationHandler.RegisterEmployee)
							reg.Post("/users", registrationHandler.RegisterUser)
						})
					})
				}
			})
		}
	})
}
