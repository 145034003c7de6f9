package handler

import (
	"net/http"

	"github.com/mnagpal/bridgewalk/internal/model"
	"github.com/mnagpal/bridgewalk/internal/store"
)

type SafetyHandler struct {
	tipStore *store.SafetyTipStore
}

func NewSafetyHandler(ts *store.SafetyTipStore) *SafetyHandler {
	return &SafetyHandler{tipStore: ts}
}

func (h *SafetyHandler) List(w http.ResponseWriter, r *http.Request) {
	tips, err := h.tipStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list safety tips"})
		return
	}
	if tips == nil {
		tips = []model.SafetyTip{}
	}
	writeJSON(w, http.StatusOK, tips)
}
