package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/point-ledger/internal/models"
	repo "github.com/baharkarakas/point-ledger/internal/repository"
)

type archive struct{ pool *pgxpool.Pool }

func NewArchive(pool *pgxpool.Pool) repo.Archive { return &archive{pool: pool} }

func (a *archive) SaveBalance(ctx context.Context, b models.Balance) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO balances(user_id, amount, last_updated_at)
		 VALUES($1,$2,$3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET amount = EXCLUDED.amount,
		     last_updated_at = EXCLUDED.last_updated_at`,
		b.UserID, b.Amount, b.LastUpdatedAt,
	)
	return err
}

func (a *archive) SaveRecord(ctx context.Context, r models.PointRecord) error {
	// Record IDs are assigned by the in-memory history store; the
	// table mirrors them as-is.
	_, err := a.pool.Exec(ctx,
		`INSERT INTO point_histories(id, user_id, amount, kind, created_at)
		 VALUES($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO NOTHING`,
		r.ID, r.UserID, r.Amount, string(r.Kind), r.CreatedAt,
	)
	return err
}

func (a *archive) SaveAudit(ctx context.Context, l models.AuditLog) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO audit_logs(id, entity_type, entity_id, action, details)
		 VALUES($1,$2,$3,$4,$5)`,
		l.ID, l.EntityType, l.EntityID, l.Action, l.Details,
	)
	return err
}
