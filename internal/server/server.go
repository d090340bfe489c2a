// Package server exposes the conversational HTTP surface over the pipeline.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salescope/salescope/internal/observability"
)

// Answerer is the single operation the surface needs from the pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Server handles chat requests over HTTP. Independent sessions are served
// concurrently; the only shared mutable state is the transcript store and
// the database pool behind the pipeline.
type Server struct {
	router   *gin.Engine
	answerer Answerer
	history  *historyStore
	logger   *slog.Logger
}

// New creates the HTTP surface. allowedOrigins may be empty, which permits
// all origins (development default).
func New(answerer Answerer, logger *slog.Logger, allowedOrigins []string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:   router,
		answerer: answerer,
		history:  newHistoryStore(),
		logger:   logger,
	}

	router.Use(s.requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", s.handleChat)
		v1.GET("/chat/:session/history", s.handleHistory)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("chat surface listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question" binding:"required"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	session := req.SessionID
	if session == "" {
		session = uuid.NewString()
	}

	answer, err := s.answerer.Answer(c.Request.Context(), req.Question)
	if err != nil {
		// Only contract violations reach here; stage failures already come
		// back as answer text.
		s.logger.Error("pipeline contract violation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	now := time.Now()
	s.history.append(session,
		Message{Role: "user", Content: req.Question, Time: now},
		Message{Role: "assistant", Content: answer, Time: now},
	)

	c.JSON(http.StatusOK, chatResponse{SessionID: session, Answer: answer})
}

func (s *Server) handleHistory(c *gin.Context) {
	session := c.Param("session")
	c.JSON(http.StatusOK, gin.H{
		"session_id": session,
		"messages":   s.history.get(session),
	})
}

// requestLogger logs each request and records HTTP metrics.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		elapsed := time.Since(start)
		observability.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		observability.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, path, status).Observe(elapsed.Seconds())

		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", elapsed)
	}
}
