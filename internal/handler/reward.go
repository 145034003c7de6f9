package handler

import (
	"log/slog"
	"net/http"

	"github.com/mnagpal/bridgewalk/internal/auth"
	"github.com/mnagpal/bridgewalk/internal/model"
	"github.com/mnagpal/bridgewalk/internal/store"
	"github.com/mnagpal/bridgewalk/internal/websocket"
)

type RewardHandler struct {
	rewardStore *store.RewardStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewRewardHandler(rs *store.RewardStore, hub *websocket.Hub, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{rewardStore: rs, hub: hub, logger: logger}
}

func (h *RewardHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list rewards"})
		return
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

// Redeem exchanges the authenticated account's points for the reward in
// the path. A decline (insufficient balance) is a 200 with
// accepted=false, not an error.
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	rewardID := r.PathValue("id")
	accountID := auth.AccountID(r.Context())

	result, err := h.rewardStore.Redeem(accountID, rewardID)
	if err != nil {
		writeStoreError(w, err, "failed to redeem reward")
		return
	}

	if result.Accepted {
		h.broadcast(websocket.NewMessage("redemption", "created", result.Redemption.ID, map[string]any{
			"reward_id":    result.Redemption.RewardID,
			"points_spent": result.Redemption.PointsSpent,
		}))
	}

	writeJSON(w, http.StatusOK, result)
}

// ListRedemptions returns the authenticated account's redemption history.
func (h *RewardHandler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := h.rewardStore.ListRedemptionsByAccount(auth.AccountID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list redemptions"})
		return
	}
	if redemptions == nil {
		redemptions = []model.Redemption{}
	}
	writeJSON(w, http.StatusOK, redemptions)
}
