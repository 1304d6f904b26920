package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aqualeaf/internal/api"
	"aqualeaf/internal/config"
	"aqualeaf/internal/mailer"
	"aqualeaf/internal/model"
	"aqualeaf/internal/model/sql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := sql.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedAdministrator(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed administrator")
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, newMailer(cfg))
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	apiGroup.POST("/register", httpHandler.Register)
	apiGroup.POST("/login", httpHandler.Login)
	apiGroup.POST("/login-admin", httpHandler.AdminLogin)
	apiGroup.POST("/logout", httpHandler.Logout)
	apiGroup.GET("/verify", httpHandler.Verify)
	apiGroup.POST("/resend-verification", httpHandler.ResendVerification)
	apiGroup.POST("/forgot-password", httpHandler.ForgotPassword)
	apiGroup.POST("/reset-password", httpHandler.ResetPassword)
	apiGroup.GET("/seaweed-species", httpHandler.ListSpecies)

	farmGroup := apiGroup.Group("")
	farmGroup.Use(httpHandler.AuthMiddleware(), httpHandler.RequireFarm())
	farmGroup.GET("/me", httpHandler.Me)

	adminGroup := apiGroup.Group("")
	adminGroup.Use(httpHandler.AuthMiddleware(), httpHandler.RequireAdmin())
	adminGroup.GET("/farm-accounts", httpHandler.ListFarmAccounts)
	adminGroup.PATCH("/farm-accounts/:id", httpHandler.ChangeFarmStatus)
	adminGroup.DELETE("/farm-accounts/:id", httpHandler.DeleteFarmAccount)
	adminGroup.GET("/admin/system-logs", httpHandler.SystemLogs)
	adminGroup.GET("/admin/statistics", httpHandler.Statistics)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

func newMailer(cfg config.Config) mailer.Mailer {
	if cfg.SMTPHost == "" {
		logrus.Warn("SMTP not configured, falling back to log mailer")
		return &mailer.LogMailer{BaseURL: cfg.PublicBaseURL}
	}
	return &mailer.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		BaseURL:  cfg.PublicBaseURL,
	}
}

// RequestIDMiddleware assigns each request a correlation id.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware records one structured entry per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.String(),
			"size":       c.Writer.Size(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString("request_id"),
		}).Info("http_request")
	}
}
