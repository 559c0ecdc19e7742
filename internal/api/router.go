package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/crackit360/practice-platform/docs"
	"github.com/crackit360/practice-platform/internal/api/handler"
	"github.com/crackit360/practice-platform/internal/api/metrics"
	"github.com/crackit360/practice-platform/internal/api/middleware"
	"github.com/crackit360/practice-platform/internal/core/service"
	"github.com/crackit360/practice-platform/internal/infrastructure/config"
	mongodb "github.com/crackit360/practice-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/crackit360/practice-platform/internal/infrastructure/db/redis"
	httphandlers "github.com/crackit360/practice-platform/internal/infrastructure/http/handlers"
	"github.com/crackit360/practice-platform/internal/security"
)

// NewRouter builds the Echo instance with all routes registered. It wires
// the repositories, services and middleware, and ensures the MongoDB
// indexes exist before the first request is served.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, activity service.ActivityEnqueuer, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crackit"))

	// --- Security primitives ---
	tokens, err := security.NewTokenService(cfg.SecretKey, cfg.JWTAlgorithm, cfg.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	uploadValidator, err := security.NewUploadValidator(cfg.Upload.TmpDir, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, err
	}
	limiter, err := newLimiter(cfg, rdb)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	questionRepo := mongodb.NewQuestionRepository(db)
	quizRepo := mongodb.NewQuizRepository(db)
	discussionRepo := mongodb.NewDiscussionRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":       userRepo.EnsureIndexes,
		"questions":   questionRepo.EnsureIndexes,
		"quizzes":     quizRepo.EnsureIndexes,
		"discussions": discussionRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return nil, fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokens, cfg.EmailSalt, cfg.RefreshTokenTTL(), log)
	practiceService := service.NewPracticeService(questionRepo, log)
	speedTestService := service.NewSpeedTestService(questionRepo)
	quizService := service.NewQuizService(questionRepo, quizRepo, activity, metrics.QuizRecorder{}, log)
	discussionService := service.NewDiscussionService(discussionRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	practiceHandler := handler.NewPracticeHandler(practiceService)
	speedTestHandler := handler.NewSpeedTestHandler(speedTestService)
	quizHandler := handler.NewQuizHandler(quizService)
	discussionHandler := handler.NewDiscussionHandler(discussionService)
	uploadHandler := handler.NewUploadHandler(uploadValidator)
	profileHandler := handler.NewProfileHandler(profileRepo)

	authRequired := middleware.Auth(authService)

	// --- API routes ---
	apiGroup := e.Group("/api", middleware.RateLimit(limiter))

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/refresh", authHandler.Refresh)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.POST("/auth/forgot-password", authHandler.ForgotPassword)
	apiGroup.POST("/auth/reset-password", authHandler.ResetPassword)
	apiGroup.GET("/auth/me", authHandler.Me, authRequired)
	apiGroup.PUT("/auth/me", authHandler.UpdateMe, authRequired)

	apiGroup.GET("/practice/free", practiceHandler.FreePractice, authRequired)
	apiGroup.GET("/practice/questions", practiceHandler.PracticeSet, authRequired)

	apiGroup.GET("/speed-test/time-limit", speedTestHandler.TimeLimit, authRequired)
	apiGroup.GET("/speed-test/questions", speedTestHandler.Questions, authRequired)
	apiGroup.POST("/speed-test/submit", speedTestHandler.Submit, authRequired)

	apiGroup.POST("/quiz/submit", quizHandler.Submit, authRequired)
	apiGroup.GET("/quiz/results", quizHandler.Results, authRequired)

	apiGroup.POST("/discussions", discussionHandler.Create, authRequired)
	apiGroup.GET("/discussions", discussionHandler.List, authRequired)
	apiGroup.GET("/discussions/:id", discussionHandler.Get, authRequired)
	apiGroup.POST("/discussions/:id/replies", discussionHandler.AddReply, authRequired)
	apiGroup.POST("/discussions/:id/vote", discussionHandler.Vote, authRequired)

	apiGroup.POST("/uploads", uploadHandler.Upload, authRequired)

	apiGroup.POST("/profile", profileHandler.Create)

	// --- Operational endpoints (no auth, no rate limit) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}

// newLimiter picks the rate-limit store from configuration: the in-process
// sliding window for single instances, Redis for shared state.
func newLimiter(cfg *config.Config, rdb *redis.Client) (middleware.Limiter, error) {
	switch cfg.RateLimit.Backend {
	case "memory":
		return security.NewSlidingWindowLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max), nil
	case "redis":
		return redisdb.NewSlidingWindowLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}
}
