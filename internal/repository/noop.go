package repository

import (
	"context"

	"github.com/baharkarakas/point-ledger/internal/models"
)

// NoopArchive is used when no DATABASE_URL is configured.
type NoopArchive struct{}

func (NoopArchive) SaveBalance(context.Context, models.Balance) error    { return nil }
func (NoopArchive) SaveRecord(context.Context, models.PointRecord) error { return nil }
func (NoopArchive) SaveAudit(context.Context, models.AuditLog) error     { return nil }

var _ Archive = NoopArchive{}
