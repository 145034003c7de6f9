package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mnagpal/bridgewalk/internal/admin"
	"github.com/mnagpal/bridgewalk/internal/handler"
	"github.com/mnagpal/bridgewalk/internal/middleware"
	"github.com/mnagpal/bridgewalk/internal/store"
	ws "github.com/mnagpal/bridgewalk/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	accountH     *handler.AccountHandler
	bridgeH      *handler.BridgeHandler
	scanH        *handler.ScanHandler
	rewardH      *handler.RewardHandler
	safetyH      *handler.SafetyHandler
	adminH       *handler.AdminHandler
	gate         *admin.Gate
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, gate *admin.Gate, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	accountStore := store.NewAccountStore(db)
	bridgeStore := store.NewBridgeStore(db)
	scanStore := store.NewScanStore(db)
	rewardStore := store.NewRewardStore(db)
	sessionStore := store.NewSessionStore(db)
	safetyTipStore := store.NewSafetyTipStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		accountH:     handler.NewAccountHandler(accountStore, sessionStore, scanStore, rewardStore, logger.With("component", "account")),
		bridgeH:      handler.NewBridgeHandler(bridgeStore, hub, logger.With("component", "bridge")),
		scanH:        handler.NewScanHandler(scanStore, hub, logger.With("component", "scan")),
		rewardH:      handler.NewRewardHandler(rewardStore, hub, logger.With("component", "reward")),
		safetyH:      handler.NewSafetyHandler(safetyTipStore),
		adminH:       handler.NewAdminHandler(gate, bridgeStore, accountStore, scanStore, logger.With("component", "admin")),
		gate:         gate,
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.accountH.Register))
	mux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.accountH.Login))
	mux.HandleFunc("POST /api/admin/login", s.rateLimitedHandler(s.adminH.Login))
	mux.HandleFunc("GET /api/bridges", s.bridgeH.List)
	mux.HandleFunc("GET /api/safety-tips", s.safetyH.List)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	// Session-protected routes
	sessionMux := http.NewServeMux()
	sessionMux.HandleFunc("POST /api/logout", s.accountH.Logout)
	sessionMux.HandleFunc("GET /api/profile", s.accountH.Profile)
	sessionMux.HandleFunc("POST /api/scans", s.scanH.Create)
	sessionMux.HandleFunc("GET /api/scans", s.scanH.List)
	sessionMux.HandleFunc("GET /api/rewards", s.rewardH.List)
	sessionMux.HandleFunc("POST /api/rewards/{id}/redeem", s.rewardH.Redeem)
	sessionMux.HandleFunc("GET /api/redemptions", s.rewardH.ListRedemptions)

	requireSession := middleware.RequireSession(s.sessionStore)
	for _, route := range []string{
		"POST /api/logout",
		"GET /api/profile",
		"POST /api/scans",
		"GET /api/scans",
		"GET /api/rewards",
		"POST /api/rewards/{id}/redeem",
		"GET /api/redemptions",
	} {
		mux.Handle(route, requireSession(sessionMux))
	}

	// Admin-gated routes: bridge registry mutation and dashboard
	gatedMux := http.NewServeMux()
	gatedMux.HandleFunc("POST /api/bridges", s.bridgeH.Create)
	gatedMux.HandleFunc("PUT /api/bridges/{id}", s.bridgeH.Update)
	gatedMux.HandleFunc("DELETE /api/bridges/{id}", s.bridgeH.Delete)
	gatedMux.HandleFunc("GET /api/bridges/{id}/qr", s.bridgeH.QRPayload)
	gatedMux.HandleFunc("GET /api/admin/stats", s.adminH.Stats)
	gatedMux.HandleFunc("POST /api/admin/logout", s.adminH.Logout)

	requireGate := middleware.RequireGate(s.gate)
	for _, route := range []string{
		"POST /api/bridges",
		"PUT /api/bridges/{id}",
		"DELETE /api/bridges/{id}",
		"GET /api/bridges/{id}/qr",
		"GET /api/admin/stats",
		"POST /api/admin/logout",
	} {
		mux.Handle(route, requireGate(gatedMux))
	}

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
