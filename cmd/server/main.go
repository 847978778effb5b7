package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/headlinebreaks/breakmeter/internal/database"
	apperrors "github.com/headlinebreaks/breakmeter/internal/errors"
	"github.com/headlinebreaks/breakmeter/internal/ingest"
	"github.com/headlinebreaks/breakmeter/internal/monitoring"
	"github.com/headlinebreaks/breakmeter/internal/pricing"
	"github.com/headlinebreaks/breakmeter/internal/profile"
	"github.com/headlinebreaks/breakmeter/internal/ratelimit"
	"github.com/headlinebreaks/breakmeter/internal/session"
)

// appDeps bundles everything the router needs so tests can build the same
// routes against a throwaway database.
type appDeps struct {
	repo     *database.Repository
	sessions *session.Store
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	limiter  *ratelimit.Limiter
}

func main() {
	appLogger := monitoring.NewLoggerFromEnv()
	slog.SetDefault(appLogger.Logger)

	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")
	overlayPath := os.Getenv("PROFILE_OVERLAY")
	sessionTTL := getEnvDuration("SESSION_TTL", 30*time.Minute)

	if overlayPath != "" {
		if err := profile.LoadOverlay(overlayPath); err != nil {
			slog.Error("Failed to load profile overlay", "path", overlayPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Profile overlay loaded", "path", overlayPath)
	}

	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	limitCfg := ratelimit.DefaultConfig()
	if v := os.Getenv("RATE_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limitCfg.RequestsPerMin = n
		}
	}

	deps := &appDeps{
		repo:     repo,
		sessions: session.NewStore(repo, sessionTTL),
		metrics:  monitoring.NewMetrics(),
		logger:   appLogger,
		limiter:  ratelimit.New(limitCfg),
	}

	r := setupRouter(deps)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func setupRouter(deps *appDeps) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.Middleware(deps.metrics, deps.logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())
	r.Use(deps.limiter.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(getEnvOrDefault("CORS_ORIGINS", "http://localhost:5173"), ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"metrics":   deps.metrics.GetStats(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.metrics.GetStats())
	})

	api := r.Group("/api")

	api.GET("/profiles", func(c *gin.Context) {
		profiles := make([]gin.H, 0)
		for _, key := range profile.Keys() {
			p, err := profile.Get(key)
			if err != nil {
				continue
			}
			profiles = append(profiles, gin.H{
				"key":        key,
				"name":       p.DisplayName,
				"mode":       p.Mode,
				"categories": p.CategoryNames(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"profiles": profiles})
	})

	api.POST("/price", func(c *gin.Context) { handlePrice(c, deps) })

	api.POST("/sessions", func(c *gin.Context) {
		id, err := deps.sessions.Create()
		if err != nil {
			respondError(c, apperrors.ToAppError(err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"session_id": id})
	})

	api.GET("/sessions/:id/adjustments", func(c *gin.Context) {
		state, err := deps.sessions.Adjustments(c.Param("id"))
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
				return
			}
			respondError(c, apperrors.ToAppError(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"adjustments": state})
	})

	api.PUT("/sessions/:id/adjustments", func(c *gin.Context) {
		var req struct {
			Entity   string `json:"entity" binding:"required"`
			Momentum string `json:"momentum"`
			Velocity string `json:"velocity"`
		}
		if err := c.BindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("invalid adjustment payload", err))
			return
		}

		adj := pricing.Adjustment{Momentum: req.Momentum, Velocity: req.Velocity}
		if err := deps.sessions.SetAdjustment(c.Param("id"), req.Entity, adj); err != nil {
			switch {
			case errors.Is(err, session.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			case errors.Is(err, session.ErrInvalidAdjustment):
				respondError(c, apperrors.NewValidationError(
					"momentum must be one of "+strings.Join(pricing.MomentumValues(), ", ")+
						" and velocity one of "+strings.Join(pricing.VelocityValues(), ", "), err))
			default:
				respondError(c, apperrors.ToAppError(err))
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"entity": req.Entity, "momentum": adj.Momentum, "velocity": adj.Velocity})
	})

	api.GET("/runs/:id", func(c *gin.Context) {
		run, err := deps.repo.GetRun(c.Param("id"))
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
				return
			}
			respondError(c, apperrors.ToAppError(err))
			return
		}

		var result pricing.Result
		if err := json.Unmarshal([]byte(run.Result), &result); err != nil {
			respondError(c, apperrors.NewInternalError("stored run is unreadable", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"run_id":     run.ID,
			"profile":    run.ProfileKey,
			"session_id": run.SessionID,
			"created_at": run.CreatedAt.Format(time.RFC3339),
			"result":     result,
		})
	})

	return r
}

// priceConfig is the client-facing pricing configuration. Money fields are
// dollars and converted to cents at the boundary.
type priceConfig struct {
	Target        float64 `json:"target" form:"target"`
	Cost          float64 `json:"cost" form:"cost"`
	FeePercent    float64 `json:"fee_percent" form:"fee_percent"`
	MarginPercent float64 `json:"margin_percent" form:"margin_percent"`
	Floor         float64 `json:"floor" form:"floor"`
	Granularity   float64 `json:"granularity" form:"granularity"`
	Tiering       bool    `json:"tiering" form:"tiering"`
	StrictZero    bool    `json:"strict_zero" form:"strict_zero"`
}

func (pc priceConfig) toRunConfig() pricing.RunConfig {
	cfg := pricing.RunConfig{
		TargetCents:      dollarsToCents(pc.Target),
		CostCents:        dollarsToCents(pc.Cost),
		FeePercent:       pc.FeePercent,
		MarginPercent:    pc.MarginPercent,
		FloorCents:       dollarsToCents(pc.Floor),
		GranularityCents: dollarsToCents(pc.Granularity),
		Tiering:          pc.Tiering,
	}
	if pc.StrictZero {
		cfg.ZeroScore = pricing.ZeroScoreFail
	}
	return cfg
}

func handlePrice(c *gin.Context, deps *appDeps) {
	start := time.Now()

	var (
		profileKey string
		sessionID  string
		rows       []pricing.Row
		cfg        priceConfig
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		profileKey = c.PostForm("profile")
		sessionID = c.PostForm("session_id")
		if err := c.ShouldBind(&cfg); err != nil {
			respondError(c, apperrors.NewValidationError("invalid form values", err))
			return
		}

		file, _, err := c.Request.FormFile("checklist")
		if err != nil {
			respondError(c, apperrors.NewValidationError("checklist file is required", err))
			return
		}
		defer file.Close()

		rows, err = ingest.ParseChecklist(file)
		if err != nil {
			respondError(c, apperrors.ToAppError(err))
			return
		}
	} else {
		var req struct {
			Profile   string        `json:"profile" binding:"required"`
			SessionID string        `json:"session_id"`
			Rows      []pricing.Row `json:"rows" binding:"required"`
			priceConfig
		}
		if err := c.BindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError("invalid pricing request", err))
			return
		}
		profileKey = req.Profile
		sessionID = req.SessionID
		rows = req.Rows
		cfg = req.priceConfig
	}

	p, err := profile.Get(profileKey)
	if err != nil {
		respondError(c, apperrors.ToAppError(err))
		return
	}

	engine, err := pricing.NewEngine(p)
	if err != nil {
		respondError(c, apperrors.ToAppError(err))
		return
	}

	var state pricing.AdjustmentState
	if sessionID != "" {
		state, err = deps.sessions.Adjustments(sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
				return
			}
			respondError(c, apperrors.ToAppError(err))
			return
		}
	}

	result, err := engine.Run(rows, cfg.toRunConfig(), state)
	if err != nil {
		respondError(c, apperrors.ToAppError(err))
		return
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to serialize run result", err))
		return
	}

	run := database.NewPricingRun(profileKey, sessionID, string(resultJSON),
		result.Summary.TargetCents, dollarsToCents(cfg.Floor),
		result.Summary.RowCount, result.Summary.EntityCount)
	if err := deps.repo.SaveRun(run); err != nil {
		// The run itself succeeded; return it without a run id.
		slog.Error("Failed to persist pricing run", "error", err)
		run.ID = ""
	}

	deps.metrics.RecordRun(result.Summary.RowCount)
	deps.logger.LogRun(profileKey, result.Summary.RowCount, result.Summary.EntityCount,
		result.Summary.TargetCents, time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"run_id": run.ID,
		"result": result,
	})
}

func respondError(c *gin.Context, appErr *apperrors.AppError) {
	apperrors.LogError(c, appErr)
	c.JSON(appErr.HTTPStatus, appErr)
}

func dollarsToCents(d float64) int64 {
	return int64(math.Round(d * 100))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
