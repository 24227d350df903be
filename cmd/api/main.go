package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/config"
	appHTTP "github.com/aleenavigoda/yardso-sub000/internal/handler/http"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/cron"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/email"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/jwt"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/oauth"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/storage"
	"github.com/aleenavigoda/yardso-sub000/internal/repository/postgresql"
	agentService "github.com/aleenavigoda/yardso-sub000/internal/service/agent"
	serviceAuth "github.com/aleenavigoda/yardso-sub000/internal/service/auth"
	bountyService "github.com/aleenavigoda/yardso-sub000/internal/service/bounty"
	dashboardService "github.com/aleenavigoda/yardso-sub000/internal/service/dashboard"
	feedService "github.com/aleenavigoda/yardso-sub000/internal/service/feed"
	"github.com/aleenavigoda/yardso-sub000/internal/service/file"
	invitationService "github.com/aleenavigoda/yardso-sub000/internal/service/invitation"
	notificationService "github.com/aleenavigoda/yardso-sub000/internal/service/notification"
	profileService "github.com/aleenavigoda/yardso-sub000/internal/service/profile"
	timelogService "github.com/aleenavigoda/yardso-sub000/internal/service/timelog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// Redis only backs rate limiting, so a missing Redis is a warning, not
	// a startup failure
	redisClient, err := database.NewRedisClient(cfg.Redis.URI)
	if err != nil {
		log.Println("Redis unavailable, rate limiting disabled:", err)
		redisClient = nil
	}

	userRepo := postgresql.NewUserRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	pendingProfileRepo := postgresql.NewPendingProfileRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	timeTransactionRepo := postgresql.NewTimeTransactionRepository(db)
	agentTransactionRepo := postgresql.NewAgentTimeTransactionRepository(db)
	agentRepo := postgresql.NewAgentRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	pendingTimeLogRepo := postgresql.NewPendingTimeLogRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	bountyRepo := postgresql.NewBountyRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "cloudinary":
		fileStorage, err = storage.NewCloudinaryStorage(
			cfg.Storage.CloudinaryCloudName,
			cfg.Storage.CloudinaryAPIKey,
			cfg.Storage.CloudinaryAPISecret,
			"avatars",
		)
		if err != nil {
			log.Fatal("Failed to initialize cloudinary storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})
	profileSvc := profileService.NewProfileService(profileRepo, fileService)
	invitationSvc := invitationService.NewInvitationService(
		db,
		cfg,
		invitationRepo,
		pendingTimeLogRepo,
		timeTransactionRepo,
		profileRepo,
		notificationSvc,
		emailService,
	)
	timeLogSvc := timelogService.NewTimeLogService(
		db,
		timeTransactionRepo,
		agentTransactionRepo,
		agentRepo,
		profileRepo,
		profileSvc,
		invitationSvc,
		notificationSvc,
		emailService,
	)
	authSvc := serviceAuth.NewAuthService(
		db,
		cfg,
		userRepo,
		JWTService,
		JWTRepository,
		profileRepo,
		pendingProfileRepo,
		emailService,
		timeLogSvc,
	)
	feedSvc := feedService.NewFeedService(
		postgresql.NewReciprocalChecker(db),
		postgresql.NewMemberTransactionSource(db),
		postgresql.NewAgentTransactionSource(db),
	)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, profileRepo)
	bountySvc := bountyService.NewBountyService(bountyRepo)
	agentSvc := agentService.NewAgentService(agentRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	profileHandler := appHTTP.NewProfileHandler(profileSvc)
	timeLogHandler := appHTTP.NewTimeLogHandler(timeLogSvc)
	invitationHandler := appHTTP.NewInvitationHandler(invitationSvc)
	feedHandler := appHTTP.NewFeedHandler(feedSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	agentHandler := appHTTP.NewAgentHandler(agentSvc)
	bountyHandler := appHTTP.NewBountyHandler(bountySvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	metaHandler := appHTTP.NewMetaHandler()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		redisClient,
		authHandler,
		profileHandler,
		timeLogHandler,
		invitationHandler,
		feedHandler,
		dashboardHandler,
		agentHandler,
		bountyHandler,
		notificationHandler,
		metaHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewInvitationJobs(invitationSvc, pendingProfileRepo).RegisterJobs(scheduler)
	cron.NewSessionJobs(JWTRepository).RegisterJobs(scheduler)
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}

	scheduler.Stop()
	// Drains queued notifications before the pool closes
	notificationSvc.Stop()
	if redisClient != nil {
		redisClient.Close()
	}
	db.Close()
}
