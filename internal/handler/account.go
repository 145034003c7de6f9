package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mnagpal/bridgewalk/internal/auth"
	"github.com/mnagpal/bridgewalk/internal/middleware"
	"github.com/mnagpal/bridgewalk/internal/model"
	"github.com/mnagpal/bridgewalk/internal/store"
)

type AccountHandler struct {
	accountStore *store.AccountStore
	sessionStore *store.SessionStore
	scanStore    *store.ScanStore
	rewardStore  *store.RewardStore
	logger       *slog.Logger
}

func NewAccountHandler(as *store.AccountStore, ss *store.SessionStore, scs *store.ScanStore, rs *store.RewardStore, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountStore: as,
		sessionStore: ss,
		scanStore:    scs,
		rewardStore:  rs,
		logger:       logger,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if !store.ValidPassword(req.Password) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password must be at least 6 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register"})
		return
	}

	account, err := h.accountStore.Create(req.Name, req.Email, string(hash))
	if err != nil {
		writeStoreError(w, err, "failed to register")
		return
	}

	sess, err := h.sessionStore.Create(account.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register"})
		return
	}
	setSessionCookie(w, sess.Token, sess.ExpiresAt)

	writeJSON(w, http.StatusCreated, map[string]any{
		"account": account,
		"token":   sess.Token,
	})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	accountID, hash, err := h.accountStore.GetPasswordHash(req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	account, err := h.accountStore.GetByID(accountID)
	if err != nil || account == nil {
		h.logger.Error("login account lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log in"})
		return
	}

	sess, err := h.sessionStore.Create(account.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log in"})
		return
	}
	setSessionCookie(w, sess.Token, sess.ExpiresAt)

	writeJSON(w, http.StatusOK, map[string]any{
		"account": account,
		"token":   sess.Token,
	})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName()); err == nil && cookie.Value != "" {
		if err := h.sessionStore.DeleteByToken(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Profile returns the authenticated account with its scan and redemption
// history.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountID(r.Context())

	account, err := h.accountStore.GetByID(accountID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get profile"})
		return
	}
	if account == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "account not found"})
		return
	}

	scans, err := h.scanStore.ListByAccount(accountID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get scan history"})
		return
	}
	if scans == nil {
		scans = []model.Scan{}
	}

	redemptions, err := h.rewardStore.ListRedemptionsByAccount(accountID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get redemptions"})
		return
	}
	if redemptions == nil {
		redemptions = []model.Redemption{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"account":     account,
		"scans":       scans,
		"redemptions": redemptions,
	})
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName(),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
