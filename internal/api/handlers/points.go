package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/point-ledger/internal/api/httpx"
	"github.com/baharkarakas/point-ledger/internal/api/validate"
	"github.com/baharkarakas/point-ledger/internal/ledger"
	"github.com/baharkarakas/point-ledger/internal/middleware"
	"github.com/baharkarakas/point-ledger/internal/models"
	"github.com/baharkarakas/point-ledger/internal/services"
)

type PointsHandler struct {
	Svc *services.PointService
}

func NewPointsHandler(svc *services.PointService) *PointsHandler {
	return &PointsHandler{Svc: svc}
}

type amountReq struct {
	Amount int64 `json:"amount"`
}

func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidUser), errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrLimitExceeded),
		errors.Is(err, ledger.ErrBalanceCapExceeded),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrAuthenticationRequired):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrSuspiciousActivity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeLedgerError(w http.ResponseWriter, err error) {
	httpx.WriteError(w, statusFor(err), ledger.Code(err), err.Error(), nil)
}

func writeBadUserID(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_user", "user id must be a positive integer", nil)
}

func (h *PointsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeBadUserID(w)
		return
	}
	b, err := h.Svc.GetBalance(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *PointsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeBadUserID(w)
		return
	}
	recs, err := h.Svc.GetHistory(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recs)
}

func (h *PointsHandler) Charge(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "charge", h.Svc.Charge)
}

func (h *PointsHandler) Use(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "use", h.Svc.Use)
}

func (h *PointsHandler) mutate(w http.ResponseWriter, r *http.Request, kind string, op func(int64, int64) (models.Balance, error)) {
	id, ok := userIDParam(r)
	if !ok {
		writeBadUserID(w)
		return
	}
	var req amountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body", nil)
		return
	}
	if ef := validate.MinInt("amount", req.Amount, 1); ef != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", ef.Msg, validate.Errs{*ef})
		return
	}

	caller, _ := middleware.UserID(r.Context())
	b, err := op(id, req.Amount)
	if err != nil {
		slog.Info("point mutation rejected", "kind", kind, "user_id", id, "amount", req.Amount, "reason", ledger.Code(err), "caller", caller)
		writeLedgerError(w, err)
		return
	}
	slog.Info("point mutation applied", "kind", kind, "user_id", id, "amount", req.Amount, "balance", b.Amount, "caller", caller)
	httpx.WriteJSON(w, http.StatusOK, b)
}
