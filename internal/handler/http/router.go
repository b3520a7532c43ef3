package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/simagang/simagang-backend-go/internal/config"
	"github.com/simagang/simagang-backend-go/internal/handler/http/middleware"
	"github.com/simagang/simagang-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Internship InternshipHandler
	Permission PermissionHandler
	Logbook    LogbookHandler
	Presence   PresenceHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "simagang"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Locally stored attachments and attendance photos
	if cfg.Storage.Type == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit.APIRequests, cfg.RateLimit.Window))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(httprate.LimitByIP(cfg.RateLimit.LoginRequests, cfg.RateLimit.Window))
				r.Post("/register", h.Auth.Register)
				r.Post("/login", h.Auth.Login)
			})
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", h.Auth.Profile)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/internships", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.InternOnly)
					r.Get("/my", h.Internship.GetMyInternship)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Internship.Create)
					r.Put("/{id}", h.Internship.Update)
				})

				r.Get("/", h.Internship.List)
				r.Get("/{id}", h.Internship.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/{id}/presences/stats", h.Presence.Stats)
				})
			})

			r.Route("/permissions", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.InternOnly)
					r.Post("/", h.Permission.Create)
					r.Get("/my", h.Permission.ListMine)
					r.Put("/{id}", h.Permission.Update)
					r.Delete("/{id}", h.Permission.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/", h.Permission.List)
					r.Get("/{id}", h.Permission.Get)
					r.Post("/{id}/review", h.Permission.Review)
				})
			})

			r.Route("/logbooks", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.InternOnly)
					r.Post("/", h.Logbook.Create)
					r.Get("/my", h.Logbook.ListMine)
					r.Get("/my/stats", h.Logbook.MyStats)
					r.Put("/{id}", h.Logbook.Update)
					r.Delete("/{id}", h.Logbook.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/", h.Logbook.List)
					r.Get("/{id}", h.Logbook.Get)
					r.Post("/{id}/review", h.Logbook.Review)
				})
			})

			r.Route("/presences", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.InternOnly)
					r.Post("/check-in", h.Presence.CheckIn)
					r.Post("/check-out", h.Presence.CheckOut)
					r.Get("/today", h.Presence.Today)
					r.Get("/my", h.Presence.ListMine)
					r.Get("/my/stats", h.Presence.MyStats)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/", h.Presence.List)
					r.Get("/{id}", h.Presence.Get)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.InternOnly)
					r.Get("/intern", h.Dashboard.InternOverview)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.ReviewerOnly)
					r.Get("/reviewer", h.Dashboard.ReviewerOverview)
				})
			})
		})
	})
	return r
}
