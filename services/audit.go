package services

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"medkb/models"
	"medkb/store"
)

var auditFailuresCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "audit_log_failures_total",
		Help: "Total number of audit log writes that failed and were dropped.",
	},
)

func init() {
	prometheus.MustRegister(auditFailuresCounter)
}

// Audit records mutations into the append-only audit log. Writes are
// best-effort: a failed write is logged and counted, never surfaced to
// the caller, so the triggering mutation succeeds independently.
type Audit struct {
	Store  *store.Store
	Logger *zap.Logger
}

// NewAudit creates a new audit recorder.
func NewAudit(st *store.Store, logger *zap.Logger) *Audit {
	return &Audit{Store: st, Logger: logger}
}

// Entry describes one mutation to record.
type Entry struct {
	EntityType string
	EntityID   string
	Action     string
	UserID     string
	Changes    interface{} // input payload, stored as a JSON snapshot
	IPAddress  string
	UserAgent  string
}

// Record appends one audit row for a successful create/update.
func (a *Audit) Record(ctx context.Context, e Entry) {
	var changes []byte
	if e.Changes != nil {
		b, err := json.Marshal(e.Changes)
		if err != nil {
			a.Logger.Warn("Audit changes not serializable",
				zap.String("entity_type", e.EntityType), zap.Error(err))
		} else {
			changes = b
		}
	}
	entry := &models.AuditLog{
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		UserID:     e.UserID,
		Changes:    changes,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
	}
	if err := a.Store.AppendAuditLog(ctx, entry); err != nil {
		auditFailuresCounter.Inc()
		a.Logger.Error("Audit log write failed",
			zap.String("entity_type", e.EntityType),
			zap.String("entity_id", e.EntityID),
			zap.String("action", e.Action),
			zap.Error(err))
	}
}
