package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-skin-analyzer/internal/config"
	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/internal/observer"
	"go-skin-analyzer/internal/service"
	"go-skin-analyzer/pkg/models"
)

// NewHandler builds the HTTP router. metrics may be nil; the /metrics
// endpoint then reports an empty snapshot.
func NewHandler(svc service.SkinAnalysisService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/metrics", metricsSnapshot(metrics))
	r.POST("/analyze", analyzeByURL(svc, cfg))
	r.POST("/analyze/upload", analyzeUpload(svc, cfg))

	return r
}

func analyzeByURL(svc service.SkinAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing skin analysis request")

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		if req.DetectionThreshold != nil && (*req.DetectionThreshold < 0 || *req.DetectionThreshold > 1) {
			respondError(c, http.StatusBadRequest, "detection_threshold must be in [0,1]", nil)
			return
		}

		if err := svc.ValidateImageURL(req.URL); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Invalid image URL")
			respondError(c, http.StatusBadRequest, "invalid image URL", err)
			return
		}

		response, err := svc.AnalyzeURL(ctx, req)
		if err != nil {
			respondError(c, determineStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                 req.URL,
			"analysis_id":         response.Result.ID,
			"processing_time_sec": response.Result.ProcessingTimeSec,
			"cancer_detected":     response.Result.CancerDetected,
			"risk_tier":           response.Result.RiskTier,
		}).Info("Skin analysis completed successfully")

		c.JSON(http.StatusOK, response)
	}
}

func analyzeUpload(svc service.SkinAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		fileHeader, err := c.FormFile("image")
		if err != nil {
			respondError(c, http.StatusBadRequest, "multipart form must carry an \"image\" file", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "cannot open uploaded file", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "cannot read uploaded file", err)
			return
		}

		includeOverlay := c.Query("include_overlay") == "true"
		var threshold *float64
		if raw := c.Query("detection_threshold"); raw != "" {
			t, err := strconv.ParseFloat(raw, 64)
			if err != nil || t < 0 || t > 1 {
				respondError(c, http.StatusBadRequest, "detection_threshold must be in [0,1]", err)
				return
			}
			threshold = &t
		}

		response, err := svc.AnalyzeBytes(ctx, data, includeOverlay, threshold)
		if err != nil {
			respondError(c, determineStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"filename":            fileHeader.Filename,
			"analysis_id":         response.Result.ID,
			"processing_time_sec": response.Result.ProcessingTimeSec,
			"cancer_detected":     response.Result.CancerDetected,
			"risk_tier":           response.Result.RiskTier,
		}).Info("Skin analysis completed successfully")

		c.JSON(http.StatusOK, response)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func metricsSnapshot(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return apperrors.GetStatusCode(appErr)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %v", message, err)
	}
	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: msg,
	})
}
