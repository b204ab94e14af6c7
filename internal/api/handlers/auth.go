package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/baharkarakas/point-ledger/internal/auth"
	"github.com/baharkarakas/point-ledger/internal/config"
)

type AuthHandler struct {
	TM               *auth.TokenManager
	AppEnv           string
	AuthUser         string
	AuthPasswordHash string
}

func NewAuthHandler(tm *auth.TokenManager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		TM:               tm,
		AppEnv:           cfg.Env,
		AuthUser:         cfg.AuthUser,
		AuthPasswordHash: cfg.AuthPasswordHash,
	}
}

type loginReq struct {
	UserID   string `json:"user_id,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
}

type tokenResp struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

// Login issues a token pair. In dev any caller gets one; outside dev
// the request must match the configured service account credential.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.AppEnv == "dev" {
		var req loginReq
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.UserID == "" {
			req.UserID = "0"
		}
		if req.Role == "" {
			req.Role = "user"
		}
		h.issuePair(w, req.UserID, req.Role)
		return
	}

	if h.AuthUser == "" || h.AuthPasswordHash == "" {
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login not configured"})
		return
	}

	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}
	if req.UserID != h.AuthUser || auth.VerifyPassword(req.Password, h.AuthPasswordHash) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		return
	}
	h.issuePair(w, req.UserID, "user")
}

func (h *AuthHandler) issuePair(w http.ResponseWriter, userID, role string) {
	access, refresh, exp, err := h.TM.GeneratePair(userID, role)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}
	_ = json.NewEncoder(w).Encode(tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req refreshReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}
	claims, isRefresh, err := h.TM.ParseAny(req.RefreshToken)
	if err != nil || !isRefresh {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid refresh token"})
		return
	}
	h.issuePair(w, claims.UserID, claims.Role)
}
