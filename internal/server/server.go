// Package server provides the HTTP API: a health check and the decision
// endpoint that runs query + documents through retrieval and the decision
// model.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"intellidocs/internal/domain"
	"intellidocs/internal/index"
)

// Retriever is the server-facing subset of the retrieval pipeline.
type Retriever interface {
	Retrieve(ctx context.Context, docs []domain.Document, query string, k int) (*domain.Retrieval, error)
}

// Server provides the HTTP endpoints.
type Server struct {
	echo      *echo.Echo
	retriever Retriever
	decider   domain.DecisionClient
	logger    *zap.Logger
	config    *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
	TopK int
	// BodyLimit bounds upload size, in echo's human-readable form.
	BodyLimit string
}

// New creates the HTTP server.
func New(retriever Retriever, decider domain.DecisionClient, logger *zap.Logger, cfg *Config) (*Server, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever cannot be nil")
	}
	if decider == nil {
		return nil, fmt.Errorf("decision client cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.TopK == 0 {
		cfg.TopK = 5
	}
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = "10M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		retriever: retriever,
		decider:   decider,
		logger:    logger,
		config:    cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/decisions", s.handleDecision)
}

// Metadata describes the retrieval behind a decision response.
type Metadata struct {
	TotalDocuments  int      `json:"total_documents"`
	TotalChunks     int      `json:"total_chunks"`
	RetrievedChunks int      `json:"retrieved_chunks"`
	Sources         []string `json:"sources"`
}

// DecisionResponse is the response body for POST /api/v1/decisions.
type DecisionResponse struct {
	domain.Decision
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Metadata Metadata `json:"metadata"`
}

// ErrorResponse is the error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NotFoundResponse is returned when retrieval found nothing relevant.
type NotFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleDecision runs the full pipeline for one request: multipart parse,
// retrieval, decision call, response assembly.
func (s *Server) handleDecision(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.FormValue("query")

	form, err := c.MultipartForm()
	if err != nil {
		s.logger.Warn("invalid multipart form", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to parse multipart form"})
	}
	var docs []domain.Document
	for _, fh := range form.File["documents"] {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("failed to read %s", fh.Filename)})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("failed to read %s", fh.Filename)})
		}
		docs = append(docs, domain.Document{Name: fh.Filename, Data: data})
	}

	ret, err := s.retriever.Retrieve(ctx, docs, query, s.config.TopK)
	if err != nil {
		return s.retrievalError(c, err)
	}

	texts := make([]string, len(ret.Chunks))
	for i, rc := range ret.Chunks {
		texts[i] = rc.Text
	}
	dec, err := s.decider.Decide(ctx, query, texts)
	if err != nil {
		s.logger.Error("decision call failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "decision model call failed"})
	}

	return c.JSON(http.StatusOK, DecisionResponse{
		Decision: dec,
		Status:   "accepted",
		Message:  "Relevant information found and processed",
		Metadata: Metadata{
			TotalDocuments:  ret.TotalDocuments,
			TotalChunks:     ret.TotalChunks,
			RetrievedChunks: len(ret.Chunks),
			Sources:         ret.Sources(),
		},
	})
}

// retrievalError maps each pipeline error kind to a distinct status and
// message. Nothing propagates as a raw internal fault.
func (s *Server) retrievalError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingQuery):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing query in form data"})
	case errors.Is(err, domain.ErrNoDocuments):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no documents uploaded"})
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrExtraction):
		s.logger.Warn("extraction failed", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoContent):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "no text could be extracted from any documents"})
	case errors.Is(err, domain.ErrEmbedding):
		s.logger.Error("embedding failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to generate embeddings"})
	case errors.Is(err, domain.ErrNoRelevantResult):
		return c.JSON(http.StatusNotFound, NotFoundResponse{
			Status:  "rejected",
			Message: "No relevant information found in documents",
		})
	case errors.Is(err, index.ErrEmptyInput), errors.Is(err, index.ErrNotBuilt):
		s.logger.Error("index failure", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build search index"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "request cancelled"})
	default:
		s.logger.Error("unexpected retrieval failure", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("http server starting", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
