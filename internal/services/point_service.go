package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/point-ledger/internal/ledger"
	"github.com/baharkarakas/point-ledger/internal/metrics"
	"github.com/baharkarakas/point-ledger/internal/models"
	repo "github.com/baharkarakas/point-ledger/internal/repository"
	"github.com/baharkarakas/point-ledger/internal/worker"
)

// PointService is the boundary the HTTP layer talks to. It guards the
// user ID, delegates mutations to the engine and fans committed state
// out to the archive and audit log via the worker pool.
type PointService struct {
	engine   *ledger.Engine
	balances *ledger.BalanceStore
	history  *ledger.HistoryStore
	archive  repo.Archive
	wp       *worker.Pool
}

func NewPointService(engine *ledger.Engine, balances *ledger.BalanceStore, history *ledger.HistoryStore, archive repo.Archive, wp *worker.Pool) *PointService {
	return &PointService{engine: engine, balances: balances, history: history, archive: archive, wp: wp}
}

func validUser(userID int64) error {
	if userID <= 0 {
		return ledger.ErrInvalidUser
	}
	return nil
}

func (s *PointService) GetBalance(userID int64) (models.Balance, error) {
	if err := validUser(userID); err != nil {
		return models.Balance{}, err
	}
	return s.balances.Get(userID), nil
}

func (s *PointService) GetHistory(userID int64) ([]models.PointRecord, error) {
	if err := validUser(userID); err != nil {
		return nil, err
	}
	return s.history.ListByUser(userID), nil
}

func (s *PointService) Charge(userID, amount int64) (models.Balance, error) {
	if err := validUser(userID); err != nil {
		return models.Balance{}, err
	}
	b, rec, err := s.engine.Charge(userID, amount)
	if err != nil {
		s.reject("charge", userID, amount, err)
		return models.Balance{}, err
	}
	s.committed("charge", b, rec)
	return b, nil
}

func (s *PointService) Use(userID, amount int64) (models.Balance, error) {
	if err := validUser(userID); err != nil {
		return models.Balance{}, err
	}
	b, rec, err := s.engine.Use(userID, amount)
	if err != nil {
		s.reject("use", userID, amount, err)
		return models.Balance{}, err
	}
	s.committed("use", b, rec)
	return b, nil
}

// committed records metrics and hands the freshly committed state to
// the archive off the request path.
func (s *PointService) committed(kind string, b models.Balance, rec models.PointRecord) {
	metrics.OperationsTotal.WithLabelValues(kind).Inc()

	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.SaveBalance(ctx, b); err != nil {
			slog.Error("archive balance", "user_id", b.UserID, "err", err)
		}
		if err := s.archive.SaveRecord(ctx, rec); err != nil {
			slog.Error("archive record", "record_id", rec.ID, "err", err)
		}
		s.audit(ctx, b.UserID, kind, map[string]any{"amount": rec.Amount, "balance": b.Amount})
	})
}

func (s *PointService) reject(kind string, userID, amount int64, err error) {
	code := ledger.Code(err)
	metrics.RejectionsTotal.WithLabelValues(kind, code).Inc()
	s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.audit(ctx, userID, kind+"_rejected", map[string]any{"amount": amount, "reason": code})
	})
}

func (s *PointService) audit(ctx context.Context, userID int64, action string, details map[string]any) {
	entityID := strconv.FormatInt(userID, 10)
	err := s.archive.SaveAudit(ctx, models.AuditLog{
		ID:         uuid.NewString(),
		EntityType: "point",
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	})
	if err != nil {
		slog.Error("audit", "user_id", userID, "action", action, "err", err)
	}
}
