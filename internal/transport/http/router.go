package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/internship-api/internal/application/admin"
	"github.com/internship-api/internal/application/application"
	"github.com/internship-api/internal/application/auth"
	"github.com/internship-api/internal/application/chat"
	"github.com/internship-api/internal/application/contact"
	"github.com/internship-api/internal/application/export"
	"github.com/internship-api/internal/application/notification"
	"github.com/internship-api/internal/config"
	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/transport/http/handler"
	appmiddleware "github.com/internship-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.UserRepo)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:  deps.UserRepo,
		OTPRepo:   deps.OTPRepo,
		Mailer:    deps.Mailer,
		JWT:       deps.JWTProvider,
		OTPTTL:    cfg.OTPTTL,
		ClientURL: cfg.ClientURL,
	})
	appSvc := application.NewService(application.ServiceDeps{
		AppRepo:   deps.AppRepo,
		UserRepo:  deps.UserRepo,
		NotifRepo: deps.NotifRepo,
		Mailer:    deps.Mailer,
		SMSSender: deps.SMSSender,
		ClientURL: cfg.ClientURL,
	})
	chatSvc := chat.NewService(chat.ServiceDeps{
		ChatRepo: deps.ChatRepo,
		UserRepo: deps.UserRepo,
	})
	contactSvc := contact.NewService(contact.ServiceDeps{
		ContactRepo: deps.ContactRepo,
		Mailer:      deps.Mailer,
	})
	notifSvc := notification.NewService(notification.ServiceDeps{
		NotifRepo: deps.NotifRepo,
	})
	adminSvc := admin.NewService(admin.ServiceDeps{
		UserRepo: deps.UserRepo,
		AppRepo:  deps.AppRepo,
	})
	exportSvc := export.NewService(export.ServiceDeps{
		AppRepo:  deps.AppRepo,
		UserRepo: deps.UserRepo,
		Store:    deps.S3Store,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	appH := handler.NewApplicationHandler(appSvc)
	chatH := handler.NewChatHandler(chatSvc)
	contactH := handler.NewContactHandler(contactSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	adminH := handler.NewAdminHandler(adminSvc, appSvc, exportSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/auth/forgot-password", authH.ForgotPassword)
		r.With(sensitiveRL.Limit).Post("/auth/reset-password", authH.ResetPassword)

		r.With(sensitiveRL.Limit).Post("/contact/submit", contactH.Submit)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/profile", authH.Profile)
			r.Put("/auth/update-profile", authH.UpdateProfile)
			r.Put("/auth/change-password", authH.ChangePassword)

			r.Post("/applications/submit", appH.Submit)
			r.Get("/applications/my-applications", appH.ListMine)

			r.Get("/chat/my-chat", chatH.GetMine)
			r.Post("/chat/send", chatH.Send)

			r.Get("/notifications", notifH.ListUnread)
			r.Put("/notifications/{id}/read", notifH.MarkAsRead)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/applications/all", appH.ListAll)

				r.Get("/admin/users", adminH.ListUsers)
				r.Get("/admin/applications", adminH.ListApplications)
				r.Put("/admin/applications/{id}/status", adminH.UpdateApplicationStatus)
				r.Get("/admin/export-applications", adminH.ExportApplications)
				r.Get("/admin/export-users", adminH.ExportUsers)
				r.Get("/admin/stats", adminH.Stats)
				r.Put("/admin/users/{id}/verify", adminH.VerifyUser)
				r.Put("/admin/users/{id}/make-admin", adminH.MakeAdmin)
				r.Delete("/admin/users/{id}", adminH.DeleteUser)

				r.Get("/chat/all", chatH.ListAll)
				r.Get("/chat/{id}", chatH.Get)
				r.Post("/chat/{id}/reply", chatH.Reply)
				r.Put("/chat/{id}/close", chatH.Close)

				r.Get("/contact/all", contactH.ListAll)
				r.Put("/contact/{id}/status", contactH.UpdateStatus)
				r.Delete("/contact/{id}", contactH.Delete)
			})
		})
	})

	return r
}
