// Package http serves the plan building use cases over HTTP.
package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"routing/internal/core/application/payload"
	"routing/internal/core/application/usecases/commands"
	"routing/internal/core/application/usecases/queries"
	"routing/internal/core/domain/model/plan"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	instanceReportTTL     = 10 * time.Minute
	instanceReportCleanup = 20 * time.Minute
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	buildFromPayloadHandler commands.BuildPlanFromPayloadCommandHandler
	buildFromTextHandler    commands.BuildPlanFromTextCommandHandler

	// Query handlers
	getPlanReportHandler queries.GetPlanReportQueryHandler

	// instanceReports keeps overview reports keyed by the digest of the
	// instance text they were built from.
	instanceReports *cache.Cache
	allowedOrigins  []string

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	buildFromPayloadHandler commands.BuildPlanFromPayloadCommandHandler,
	buildFromTextHandler commands.BuildPlanFromTextCommandHandler,
	getPlanReportHandler queries.GetPlanReportQueryHandler,
	allowedOrigins []string,
	logger *slog.Logger,
) *Server {
	return &Server{
		buildFromPayloadHandler: buildFromPayloadHandler,
		buildFromTextHandler:    buildFromTextHandler,
		getPlanReportHandler:    getPlanReportHandler,
		instanceReports:         cache.New(instanceReportTTL, instanceReportCleanup),
		allowedOrigins:          allowedOrigins,
		logger:                  logger.With("component", "http_server"),
	}
}

// Register mounts the routes on e. Requests under /api/v1 are validated
// against the embedded OpenAPI document first.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return err
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	e.Use(echo.WrapMiddleware(corsHandler.Handler))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validate)
	api.GET("/openapi.json", s.GetOpenAPI)
	api.POST("/plans", s.CreatePlan)
	api.POST("/instances", s.ImportInstance)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetOpenAPI handles GET /api/v1/openapi.json.
func (s *Server) GetOpenAPI(ctx echo.Context) error {
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
}

// CreatePlan handles POST /api/v1/plans - builds a plan from a structured
// payload and returns its report with every vehicle trip.
func (s *Server) CreatePlan(ctx echo.Context) error {
	var body payload.Plan
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd := commands.NewBuildPlanFromPayloadCommand(body)
	p, err := s.buildFromPayloadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to build plan")
	}

	report, err := s.report(ctx.Request().Context(), p, true)
	if err != nil {
		return s.fail(ctx, err, "Failed to report plan")
	}

	return ctx.JSON(http.StatusOK, report)
}

// ImportInstance handles POST /api/v1/instances - builds a plan from instance
// text. Vehicles of such a plan have no routes yet, so only the overview is
// returned. Reposting the same text within instanceReportTTL returns the
// report built the first time.
func (s *Server) ImportInstance(ctx echo.Context) error {
	text, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	digest := sha256.Sum256(text)
	key := hex.EncodeToString(digest[:])
	if cached, ok := s.instanceReports.Get(key); ok {
		return ctx.JSON(http.StatusOK, cached)
	}

	cmd, err := commands.NewBuildPlanFromTextCommand(string(text))
	if err != nil {
		return s.fail(ctx, err, "Invalid instance")
	}
	p, err := s.buildFromTextHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to build plan")
	}

	report, err := s.report(ctx.Request().Context(), p, false)
	if err != nil {
		return s.fail(ctx, err, "Failed to report plan")
	}
	s.instanceReports.SetDefault(key, report)

	return ctx.JSON(http.StatusOK, report)
}

func (s *Server) report(
	ctx context.Context,
	p *plan.RoutingPlan,
	withTrips bool,
) (queries.GetPlanReportQueryResponse, error) {
	query, err := queries.NewGetPlanReportQuery(p, withTrips)
	if err != nil {
		return queries.GetPlanReportQueryResponse{}, err
	}
	return s.getPlanReportHandler.Handle(ctx, query)
}

// fail answers with the status matching err. Client errors carry the error
// text; anything else is logged and hidden behind message.
func (s *Server) fail(ctx echo.Context, err error, message string) error {
	status := statusOf(err)
	if status != http.StatusInternalServerError {
		message = err.Error()
	} else {
		s.logger.ErrorContext(ctx.Request().Context(), message, "error", err, "path", ctx.Path())
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}
