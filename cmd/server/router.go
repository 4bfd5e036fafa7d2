package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/empowrai/empowr-backend/internal/assessment"
	"github.com/empowrai/empowr-backend/internal/cache"
	"github.com/empowrai/empowr-backend/internal/database"
	"github.com/empowrai/empowr-backend/internal/docextract"
	"github.com/empowrai/empowr-backend/internal/errors"
	"github.com/empowrai/empowr-backend/internal/monitoring"
	"github.com/empowrai/empowr-backend/internal/ratelimit"
	"github.com/empowrai/empowr-backend/internal/security"
	"github.com/empowrai/empowr-backend/internal/types"
)

const serverVersion = "1.0.0"

type serverDeps struct {
	metrics   *monitoring.Metrics
	logger    *monitoring.Logger
	cache     *cache.Cache
	db        *database.DB
	repo      *database.Repository
	limiter   *ratelimit.RateLimiter
	redis     *ratelimit.RedisClient
	extractor *docextract.Extractor
}

func setupRouter(deps serverDeps) *gin.Engine {
	r := gin.New()

	// Monitoring first so every request is captured
	r.Use(monitoring.MonitoringMiddleware(deps.metrics, deps.logger))

	// Error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	// Security middleware
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.CORSMiddleware())

	// Rate limiting
	if deps.limiter != nil {
		r.Use(deps.limiter.Middleware())
	}

	// Response cache for assessment requests
	if deps.cache != nil {
		r.Use(deps.cache.Middleware(deps.metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		healthResponse := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   serverVersion,
			"components": gin.H{
				"database":            deps.db != nil,
				"redis":               deps.redis != nil && deps.redis.IsEnabled(),
				"document_extraction": deps.extractor != nil,
			},
			"metrics": deps.metrics.GetStats(),
		}

		if deps.db != nil {
			if err := deps.db.Ping(); err != nil {
				healthResponse["status"] = "degraded"
				c.JSON(http.StatusServiceUnavailable, healthResponse)
				return
			}
		}

		c.JSON(http.StatusOK, healthResponse)
	})

	r.POST("/assess", func(c *gin.Context) {
		start := time.Now()

		var profile types.ApplicantProfile
		if err := c.ShouldBindJSON(&profile); err != nil {
			appErr := errors.NewValidationError("invalid applicant profile: " + err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		features := assessment.ExtractFeatures(profile)
		result := assessment.Assess(features)

		deps.metrics.RecordAssessment(result.Decision)
		deps.logger.AssessmentLogger(result.Decision, result.EmpowrScore, result.BlendedScore,
			result.ApprovalProbability, time.Since(start), c.GetBool("cache_hit"))

		// Persist the decision envelope without blocking the response
		if deps.repo != nil {
			rec := database.NewAssessmentRecord(result, c.ClientIP(), c.GetHeader("User-Agent"))
			go func() {
				if err := deps.repo.SaveAssessment(rec); err != nil {
					slog.Error("Failed to save assessment", "error", err, "id", rec.ID)
				}
			}()
		}

		c.JSON(http.StatusOK, result)
	})

	r.POST("/extract-document", func(c *gin.Context) {
		if deps.extractor == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document extraction not configured"})
			return
		}

		var req types.ExtractDocumentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("documentType and text are required")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		if !docextract.IsSupportedDocumentType(req.DocumentType) {
			appErr := errors.NewValidationError("unsupported document type: " + req.DocumentType)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		deps.metrics.IncrementGeminiCalls()

		profile, err := deps.extractor.Extract(ctx, req.DocumentType, req.Text)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"documentType": req.DocumentType,
			"profile":      profile,
		})
	})

	r.GET("/assessments/recent", func(c *gin.Context) {
		limit := 50
		if limitStr := c.Query("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil {
				limit = l
			}
		}

		records, err := deps.repo.RecentAssessments(limit)
		if err != nil {
			deps.logger.APIErrorLogger(err, "GET", "/assessments/recent", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve assessments"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"assessments": records,
			"count":       len(records),
		})
	})

	r.GET("/assessments/stats", func(c *gin.Context) {
		stats, err := deps.repo.DecisionStats()
		if err != nil {
			deps.logger.APIErrorLogger(err, "GET", "/assessments/stats", c.ClientIP(), http.StatusInternalServerError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve decision stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"decisions": stats,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics endpoint
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.metrics.GetStats())
	})

	// Cache stats endpoint
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.cache.Stats())
	})

	// Database pool stats endpoint
	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": deps.db.GetPoolStats(),
		})
	})

	// Performance profiling endpoints (development only)
	if os.Getenv("ENABLE_PROFILING") == "true" {
		slog.Info("Enabling performance profiling endpoints")
		r.GET("/debug/pprof/*filepath", gin.WrapF(pprof.Index))
		r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	}

	return r
}
