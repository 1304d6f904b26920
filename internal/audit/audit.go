// Package audit appends immutable security-event records. Writes are
// best-effort: a failed append is reported to operational logging and never
// rolls back the transition it documents.
package audit

import (
	"context"

	"aqualeaf/internal/entity"
	"aqualeaf/internal/model"

	"github.com/sirupsen/logrus"
)

// Recorder appends audit events through the repository.
type Recorder struct {
	repo model.Repository
}

// NewRecorder creates a recorder backed by the given repository.
func NewRecorder(repo model.Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one audit event. targetFarm may be empty when the event has
// no target account.
func (r *Recorder) Record(ctx context.Context, eventType, actorEmail, targetFarm string) {
	if r == nil || r.repo == nil {
		return
	}

	record := &entity.SystemLog{
		EventType:  eventType,
		ActorEmail: actorEmail,
	}
	if targetFarm != "" {
		record.TargetFarm = &targetFarm
	}

	if err := r.repo.AppendSystemLog(ctx, record); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event_type":  eventType,
			"actor_email": actorEmail,
		}).Error("audit_write_failed")
	}
}

// Query returns filtered audit records, newest first.
func (r *Recorder) Query(ctx context.Context, query *entity.SystemLogQuery) ([]entity.SystemLog, error) {
	if r == nil || r.repo == nil {
		return nil, nil
	}
	return r.repo.QuerySystemLogs(ctx, query)
}
