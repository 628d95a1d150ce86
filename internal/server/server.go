package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"upgrade-advisor/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "0.1.0"

// Evaluator is the single pipeline entry point the transport depends on.
type Evaluator interface {
	Execute(ctx context.Context, request *domain.UpgradeRequest) (*domain.UpgradeResponse, error)
}

// Server is the thin HTTP layer in front of the evaluation pipeline.
type Server struct {
	engine    *gin.Engine
	evaluator Evaluator
	metrics   *Metrics
	logger    *zap.Logger
}

// NewServer wires the routes. Callers set gin's mode before construction.
func NewServer(evaluator Evaluator, metrics *Metrics, logger *zap.Logger) *Server {
	s := &Server{
		engine:    gin.New(),
		evaluator: evaluator,
		metrics:   metrics,
		logger:    logger,
	}

	s.engine.Use(gin.Recovery())

	s.engine.POST("/upgrade", s.handleUpgrade)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})))

	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleUpgrade(c *gin.Context) {
	start := time.Now()

	var request domain.UpgradeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.metrics.ObserveEvaluation("validation_error", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body: " + err.Error(),
			"error_type": domain.ErrorTypeValidation,
		})
		return
	}

	response, err := s.evaluator.Execute(c.Request.Context(), &request)
	if err != nil {
		s.writeError(c, err, start)
		return
	}

	s.metrics.ObserveEvaluation("success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, response)
}

func (s *Server) writeError(c *gin.Context, err error, start time.Time) {
	upgradeErr := &domain.UpgradeError{Message: err.Error(), Type: domain.ErrorTypeInternal}
	var typed *domain.UpgradeError
	if errors.As(err, &typed) {
		upgradeErr = typed
	}

	status := http.StatusInternalServerError
	outcome := "error"
	switch upgradeErr.Type {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
		outcome = "validation_error"
	case domain.ErrorTypeNetwork:
		status = http.StatusBadGateway
	}

	s.metrics.ObserveEvaluation(outcome, time.Since(start).Seconds())
	c.JSON(status, gin.H{
		"error":      upgradeErr.Message,
		"error_type": upgradeErr.Type,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "upgrade-advisor",
		"version": ServiceVersion,
	})
}
