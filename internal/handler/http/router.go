package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/config"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/middleware"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	redisClient *redis.Client,
	authHandler AuthHandler,
	profileHandler ProfileHandler,
	timeLogHandler TimeLogHandler,
	invitationHandler InvitationHandler,
	feedHandler FeedHandler,
	dashboardHandler DashboardHandler,
	agentHandler AgentHandler,
	bountyHandler BountyHandler,
	notificationHandler NotificationHandler,
	metaHandler MetaHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "yardso-api"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.SignUp)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Post("/verify-email", authHandler.VerifyEmail)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Public invitation landing page behind the emailed link, throttled
		// per client IP
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(redisClient, "invitations", 60, time.Minute))
			r.Get("/invitations/{token}", invitationHandler.GetByToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", profileHandler.Search)
				r.Route("/me", func(r chi.Router) {
					r.Get("/", profileHandler.GetMe)
					r.Put("/", profileHandler.UpdateMe)
					r.Post("/avatar", profileHandler.UploadAvatar)
				})
				r.Get("/{id}", profileHandler.GetByID)
			})

			r.Route("/agents", func(r chi.Router) {
				r.Get("/", agentHandler.List)
				r.Get("/{id}", agentHandler.Get)
			})

			r.Get("/meta/service-types", metaHandler.ServiceTypes)

			// Ledger operations need a materialized profile, not just an
			// account
			r.Group(func(r chi.Router) {
				r.Use(middleware.ProfileRequired())

				r.Route("/time", func(r chi.Router) {
					r.Post("/logs", timeLogHandler.Log)
					r.Post("/agent-logs", timeLogHandler.LogAgent)
					r.Route("/transactions", func(r chi.Router) {
						r.Get("/", timeLogHandler.List)
						r.Get("/{id}", timeLogHandler.Get)
						r.Post("/{id}/confirm", timeLogHandler.Confirm)
						r.Post("/{id}/dispute", timeLogHandler.Dispute)
						r.Post("/{id}/cancel", timeLogHandler.Cancel)
						r.Post("/{id}/nudge", timeLogHandler.Nudge)
					})
				})

				r.Get("/invitations", invitationHandler.List)
				r.Post("/invitations/{token}/accept", invitationHandler.Accept)
				r.Post("/invitations/{id}/cancel", invitationHandler.Cancel)

				r.Get("/feed", feedHandler.Get)

				r.Route("/dashboard", func(r chi.Router) {
					r.Get("/", dashboardHandler.Get)
					r.Get("/balance", dashboardHandler.GetTimeBalance)
				})

				r.Route("/bounties", func(r chi.Router) {
					r.Post("/", bountyHandler.Create)
					r.Get("/", bountyHandler.ListOpen)
					r.Get("/{id}", bountyHandler.Get)
					r.Post("/{id}/close", bountyHandler.Close)
				})

				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", notificationHandler.List)
					r.Get("/unread-count", notificationHandler.UnreadCount)
					r.Post("/read", notificationHandler.MarkAsRead)
					r.Post("/read-all", notificationHandler.MarkAllAsRead)
					r.Delete("/{id}", notificationHandler.Delete)
				})
			})
		})
	})
	return r
}
