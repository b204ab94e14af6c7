package repository

import (
	"context"

	"github.com/baharkarakas/point-ledger/internal/models"
)

// Archive is the durable sink fed after a mutation commits in memory.
// The in-memory ledger stays the source of truth; archive failures
// are logged and never surfaced to the caller.
type Archive interface {
	SaveBalance(ctx context.Context, b models.Balance) error
	SaveRecord(ctx context.Context, r models.PointRecord) error
	SaveAudit(ctx context.Context, l models.AuditLog) error
}
