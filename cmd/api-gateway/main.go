package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/educafacil/educafacil-api/api/swagger"
	"github.com/educafacil/educafacil-api/internal/handler"
	"github.com/educafacil/educafacil-api/internal/middleware"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/repository"
	"github.com/educafacil/educafacil-api/internal/service"
	"github.com/educafacil/educafacil-api/pkg/config"
	"github.com/educafacil/educafacil-api/pkg/jobs"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
	"github.com/educafacil/educafacil-api/pkg/logger"
	corsmiddleware "github.com/educafacil/educafacil-api/pkg/middleware/cors"
	reqidmiddleware "github.com/educafacil/educafacil-api/pkg/middleware/requestid"
)

// @title EducaFácil API
// @version 1.0.0
// @description Single-tenant educational platform: accounts, content, submissions and virtual tutor
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store", "backend", cfg.Store.Backend, "error", err)
	}

	metrics := service.NewMetricsService()

	repo := repository.New(store, cfg.Seed.AdminName, cfg.Seed.AdminEmail, logr, repository.WithObserver(metrics))
	if err := repo.Hydrate(ctx); err != nil {
		logr.Sugar().Fatalw("failed to hydrate repository", "error", err)
	}

	sessions := service.NewSessionService(repo, store, nil, logr)
	sessions.Restore(ctx)

	tutor := service.NewTutorService(cfg.Tutor, logr)
	tutor.SetObserver(metrics)

	admin := service.NewAdminService(repo, cfg.Exports.StorageDir, logr)
	content := service.NewContentService(repo, tutor, nil, logr)

	if cfg.Grader.Enabled {
		queue := jobs.NewQueue("grading", content.HandleGradeJob, jobs.QueueConfig{
			Workers:    cfg.Grader.Workers,
			MaxRetries: cfg.Grader.MaxRetries,
			RetryDelay: cfg.Grader.RetryDelay,
			Logger:     logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		content.AttachGradeQueue(queue)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	authHandler := handler.NewAuthHandler(sessions)
	adminHandler := handler.NewAdminHandler(admin, metrics)
	materialHandler := handler.NewMaterialHandler(content)
	assignmentHandler := handler.NewAssignmentHandler(content)
	submissionHandler := handler.NewSubmissionHandler(content)
	tutorHandler := handler.NewTutorHandler(tutor)
	systemHandler := handler.NewSystemHandler(repo, sessions, metrics)

	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", systemHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	authed := api.Group("")
	authed.Use(middleware.Session(sessions), middleware.Gate())

	adminRoutes := authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	adminRoutes.GET("/users", adminHandler.ListUsers)
	adminRoutes.GET("/users/export", adminHandler.ExportUsers)
	adminRoutes.GET("/teachers/pending", adminHandler.ListPendingTeachers)
	adminRoutes.POST("/teachers/:id/approve", adminHandler.ApproveTeacher)
	adminRoutes.POST("/teachers/:id/reject", adminHandler.RejectTeacher)
	adminRoutes.POST("/teachers/:id/suspend", adminHandler.SuspendTeacher)
	adminRoutes.POST("/teachers/:id/reactivate", adminHandler.ReactivateTeacher)
	adminRoutes.GET("/metrics", adminHandler.SystemMetrics)

	authed.GET("/materials", materialHandler.List)
	authed.POST("/materials", middleware.RequireRoles(models.RoleTeacher), materialHandler.Create)

	authed.GET("/assignments", assignmentHandler.List)
	authed.POST("/assignments", middleware.RequireRoles(models.RoleTeacher), assignmentHandler.Create)

	authed.GET("/submissions", submissionHandler.List)
	authed.POST("/submissions", middleware.RequireRoles(models.RoleStudent), submissionHandler.Submit)
	authed.POST("/submissions/:id/grade", middleware.RequireRoles(models.RoleTeacher), submissionHandler.Grade)

	tutorRoutes := authed.Group("/tutor")
	tutorRoutes.POST("/help", tutorHandler.Help)
	tutorRoutes.POST("/lesson-content", middleware.RequireRoles(models.RoleTeacher), tutorHandler.LessonContent)
	tutorRoutes.POST("/recommendations", tutorHandler.Recommendations)
	tutorRoutes.POST("/performance-gaps", tutorHandler.PerformanceGaps)
	tutorRoutes.POST("/study-models", tutorHandler.StudyModels)

	authed.POST("/system/reset", middleware.RequireRoles(models.RoleAdmin), systemHandler.Reset)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		return kvstore.NewRedisStore(cfg.Redis, "educafacil")
	default:
		return kvstore.NewFileStore(cfg.Store.DataDir)
	}
}
