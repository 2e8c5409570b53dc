package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/presensi-kampus/presensi-backend-go/internal/handler/http/middleware"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth          AuthHandler
	Attendance    AttendanceHandler
	Clarification ClarificationHandler
	Leave         LeaveHandler
	User          UserHandler
	Report        ReportHandler
	Notification  NotificationHandler
}

func NewRouter(jwtService jwt.Service, logger *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.NoCache)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/push/public-key", h.Notification.PublicKey)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/me", h.User.Me)
			r.Post("/push/subscribe", h.Notification.Subscribe)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/dashboard", h.Attendance.GetMyDashboard)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/staff/{nip}", h.Attendance.GetStaffSummary)
				})
			})

			r.Route("/clarifications", func(r chi.Router) {
				r.Post("/", h.Clarification.Submit)
				r.Get("/history", h.Clarification.History)

				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/queue", h.Clarification.Queue)
					r.Post("/{id}/decision", h.Clarification.Decide)
				})
			})

			r.Get("/files/*", h.Clarification.Evidence)

			r.Route("/leave", func(r chi.Router) {
				r.Get("/balance", h.Leave.MyBalance)
				r.Get("/my", h.Leave.ListMyGrants)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Leave.CreateGrant)
					r.Get("/", h.Leave.ListAllGrants)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/subordinates", h.User.Subordinates)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.User.Create)
					r.Get("/superiors", h.User.PotentialSuperiors)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/monthly", h.Report.MonthlyGrid)
				r.Get("/monthly/export", h.Report.ExportXLSX)
			})
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("presensi-backend-go\n"))
	})

	return r
}
