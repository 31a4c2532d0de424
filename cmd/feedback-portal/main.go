package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pkdsmart/feedback-portal/internal/handler"
	"github.com/pkdsmart/feedback-portal/internal/middleware"
	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/internal/repository"
	"github.com/pkdsmart/feedback-portal/internal/service"
	"github.com/pkdsmart/feedback-portal/internal/web"
	"github.com/pkdsmart/feedback-portal/pkg/config"
	"github.com/pkdsmart/feedback-portal/pkg/database"
	"github.com/pkdsmart/feedback-portal/pkg/logger"
	reqidmiddleware "github.com/pkdsmart/feedback-portal/pkg/middleware/requestid"
	"github.com/pkdsmart/feedback-portal/pkg/render"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: "feedback-portal",
	})
	feedbackSvc := service.NewFeedbackService(feedbackRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(feedbackRepo, validate, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Session(authSvc, cfg.Session.CookieName))
	r.SetHTMLTemplate(web.Templates())

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	r.GET("/", func(c *gin.Context) {
		render.Redirect(c, "/login")
	})
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/feedback", middleware.RequireRole(models.RoleUser), feedbackHandler.Page)
	r.POST("/feedback", middleware.RequireRole(models.RoleUser), feedbackHandler.Submit)

	r.GET("/dashboard", middleware.RequireRole(models.RoleAdmin), dashboardHandler.Page)
	r.POST("/dashboard", middleware.RequireRole(models.RoleAdmin), dashboardHandler.Submit)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
