package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mnagpal/bridgewalk/internal/auth"
	"github.com/mnagpal/bridgewalk/internal/model"
	"github.com/mnagpal/bridgewalk/internal/store"
	"github.com/mnagpal/bridgewalk/internal/websocket"
)

type ScanHandler struct {
	scanStore *store.ScanStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewScanHandler(ss *store.ScanStore, hub *websocket.Hub, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{scanStore: ss, hub: hub, logger: logger}
}

func (h *ScanHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// Create processes a scan submitted by the authenticated account. The
// client sends the bridge ID it decoded from the QR code (or typed in
// manually).
func (h *ScanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BridgeID string `json:"bridge_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.BridgeID = strings.TrimSpace(req.BridgeID)
	if req.BridgeID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bridge_id is required"})
		return
	}

	accountID := auth.AccountID(r.Context())
	scan, err := h.scanStore.ProcessScan(accountID, req.BridgeID)
	if err != nil {
		writeStoreError(w, err, "failed to process scan")
		return
	}

	h.broadcast(websocket.NewMessage("scan", "created", scan.ID, map[string]any{
		"bridge_id": scan.BridgeID,
		"points":    scan.Points,
	}))

	writeJSON(w, http.StatusCreated, scan)
}

// List returns the authenticated account's scan history.
func (h *ScanHandler) List(w http.ResponseWriter, r *http.Request) {
	scans, err := h.scanStore.ListByAccount(auth.AccountID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list scans"})
		return
	}
	if scans == nil {
		scans = []model.Scan{}
	}
	writeJSON(w, http.StatusOK, scans)
}
