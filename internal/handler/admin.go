package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mnagpal/bridgewalk/internal/admin"
	"github.com/mnagpal/bridgewalk/internal/model"
	"github.com/mnagpal/bridgewalk/internal/store"
)

type AdminHandler struct {
	gate         *admin.Gate
	bridgeStore  *store.BridgeStore
	accountStore *store.AccountStore
	scanStore    *store.ScanStore
	logger       *slog.Logger
}

func NewAdminHandler(gate *admin.Gate, bs *store.BridgeStore, as *store.AccountStore, ss *store.ScanStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		gate:         gate,
		bridgeStore:  bs,
		accountStore: as,
		scanStore:    ss,
		logger:       logger,
	}
}

// Login runs one attempt against the admin gate and reports the outcome
// with the remaining-attempts count.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password is required"})
		return
	}

	ok, remaining := h.gate.Attempt(req.Password)
	if !ok {
		h.logger.Warn("admin login failed", "remaining_attempts", remaining, "locked", h.gate.Locked())
		status := http.StatusUnauthorized
		if h.gate.Locked() {
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, map[string]any{
			"ok":                 false,
			"remaining_attempts": remaining,
			"locked":             h.gate.Locked(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                 true,
		"remaining_attempts": remaining,
	})
}

// Logout resets the gate to Idle, clearing the failure counter.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// Stats returns the dashboard summary.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	bridges, err := h.bridgeStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to count bridges"})
		return
	}

	accounts, err := h.accountStore.Count()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to count accounts"})
		return
	}

	totalScans, totalPoints, err := h.scanStore.Totals()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get scan totals"})
		return
	}

	writeJSON(w, http.StatusOK, model.Stats{
		Bridges:            len(bridges),
		Accounts:           accounts,
		TotalScans:         totalScans,
		TotalPointsAwarded: totalPoints,
	})
}
