package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mnagpal/bridgewalk/internal/model"
	"github.com/mnagpal/bridgewalk/internal/store"
	"github.com/mnagpal/bridgewalk/internal/websocket"
)

type BridgeHandler struct {
	bridgeStore *store.BridgeStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewBridgeHandler(bs *store.BridgeStore, hub *websocket.Hub, logger *slog.Logger) *BridgeHandler {
	return &BridgeHandler{bridgeStore: bs, hub: hub, logger: logger}
}

func (h *BridgeHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type bridgeRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	District      string `json:"district"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Location      string `json:"location"`
	PointsPerScan int    `json:"points_per_scan"`
}

func (r bridgeRequest) toModel() model.Bridge {
	return model.Bridge{
		ID:            r.ID,
		Name:          r.Name,
		District:      r.District,
		State:         r.State,
		Country:       r.Country,
		Location:      r.Location,
		PointsPerScan: r.PointsPerScan,
	}
}

func (h *BridgeHandler) List(w http.ResponseWriter, r *http.Request) {
	bridges, err := h.bridgeStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list bridges"})
		return
	}
	if bridges == nil {
		bridges = []model.Bridge{}
	}
	writeJSON(w, http.StatusOK, bridges)
}

func (h *BridgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	bridge, err := h.bridgeStore.Create(req.toModel())
	if err != nil {
		writeStoreError(w, err, "failed to create bridge")
		return
	}

	h.broadcast(websocket.NewMessage("bridge", "created", bridge.ID, nil))

	writeJSON(w, http.StatusCreated, bridge)
}

func (h *BridgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req bridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	bridge, err := h.bridgeStore.Update(id, req.toModel())
	if err != nil {
		writeStoreError(w, err, "failed to update bridge")
		return
	}

	h.broadcast(websocket.NewMessage("bridge", "updated", bridge.ID, nil))

	writeJSON(w, http.StatusOK, bridge)
}

func (h *BridgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.bridgeStore.Delete(id); err != nil {
		writeStoreError(w, err, "failed to delete bridge")
		return
	}

	h.broadcast(websocket.NewMessage("bridge", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

// QRPayload returns the text the client should render as the bridge's QR
// code. The payload is the bridge ID itself; decoding stays on the
// client side.
func (h *BridgeHandler) QRPayload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	bridge, err := h.bridgeStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get bridge"})
		return
	}
	if bridge == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "bridge not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"bridge_id": bridge.ID,
		"payload":   bridge.ID,
	})
}
