// Package api exposes the HTTP surface: registration, validation, health,
// admin login, the paper-trading simulator and technical analysis.
package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/defailabz/mvp-backend/internal/admin"
	"github.com/defailabz/mvp-backend/internal/analysis"
	"github.com/defailabz/mvp-backend/internal/dex"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/health"
	"github.com/defailabz/mvp-backend/internal/marketdata"
	"github.com/defailabz/mvp-backend/internal/middleware"
	"github.com/defailabz/mvp-backend/internal/registration"
	"github.com/defailabz/mvp-backend/pkg/logger"
)

// Server assembles handlers over the application services.
type Server struct {
	registrations *registration.Service
	dex           *dex.Service
	engine        analysis.Engine
	market        *marketdata.Client
	admin         *admin.Service
	checker       *health.Checker
	errs          *apperrors.Handler
	log           *slog.Logger
}

// NewServer constructs a Server.
func NewServer(
	registrations *registration.Service,
	dexService *dex.Service,
	engine analysis.Engine,
	market *marketdata.Client,
	adminService *admin.Service,
	checker *health.Checker,
	errs *apperrors.Handler,
	log *slog.Logger,
) *Server {
	return &Server{
		registrations: registrations,
		dex:           dexService,
		engine:        engine,
		market:        market,
		admin:         adminService,
		checker:       checker,
		errs:          errs,
		log:           log,
	}
}

// Routes builds the full handler chain: correlation IDs, request logging
// and per-route metrics around the route mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "POST /api/registration/register", s.handleRegister)
	s.handle(mux, "POST /api/registration/validate", s.handleValidate)
	s.handle(mux, "GET /api/registration/status/{code}", s.handleStatus)

	s.handle(mux, "POST /api/admin/login", s.handleAdminLogin)
	s.handle(mux, "GET /api/admin/registrations", s.requireAdmin(s.handleListRegistrations))

	s.handle(mux, "GET /api/dex/wallet", s.handleWallet)
	s.handle(mux, "POST /api/dex/trade", s.handleTrade)
	s.handle(mux, "GET /api/dex/orders", s.handleOrders)
	s.handle(mux, "GET /api/dex/trades", s.handleTrades)
	s.handle(mux, "POST /api/dex/reset", s.handleReset)

	s.handle(mux, "POST /api/analysis", s.handleAnalysis)

	s.handle(mux, "GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.Logging(s.log)(handler)
	handler = logger.Middleware(handler)

	return handler
}

// handle registers a route with the metrics middleware keyed by its pattern.
func (s *Server) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, middleware.Metrics(pattern)(fn))
}
