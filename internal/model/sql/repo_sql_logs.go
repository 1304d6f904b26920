package sql

import (
	"context"
	"fmt"
	"strings"

	"aqualeaf/internal/entity"
)

// AppendSystemLog appends one immutable audit record.
func (r *GormRepository) AppendSystemLog(ctx context.Context, record *entity.SystemLog) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if record == nil {
		return fmt.Errorf("record is nil")
	}
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

// QuerySystemLogs returns audit records newest first. Same-timestamp rows
// keep insertion order via the log_id tiebreak.
func (r *GormRepository) QuerySystemLogs(ctx context.Context, query *entity.SystemLogQuery) ([]entity.SystemLog, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	q := r.db.WithContext(ctx).Model(&entity.SystemLog{})
	if query != nil {
		if trimmed := strings.TrimSpace(query.EventType); trimmed != "" {
			q = q.Where("event_type = ?", trimmed)
		}
		if actor := strings.TrimSpace(query.ActorEmail); actor != "" {
			q = q.Where("actor_email LIKE ?", "%"+actor+"%")
		}
		if target := strings.TrimSpace(query.TargetFarm); target != "" {
			q = q.Where("target_farm LIKE ?", "%"+target+"%")
		}
		start := strings.TrimSpace(query.StartDate)
		end := strings.TrimSpace(query.EndDate)
		switch {
		case start != "" && end != "":
			q = q.Where("timestamp BETWEEN ? AND ?", start, end)
		case start != "":
			q = q.Where("timestamp >= ?", start)
		case end != "":
			q = q.Where("timestamp <= ?", end)
		}
	}

	var logs []entity.SystemLog
	if err := q.Order("timestamp DESC").Order("log_id DESC").Find(&logs).Error; err != nil {
		return nil, translate(err)
	}
	return logs, nil
}
