package sql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"aqualeaf/internal/entity"
)

// CountScans returns the combined number of fresh and dried scans.
func (r *GormRepository) CountScans(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var fresh, dried int64
	if err := r.db.WithContext(ctx).Model(&entity.ScanReportFresh{}).Count(&fresh).Error; err != nil {
		return 0, translate(err)
	}
	if err := r.db.WithContext(ctx).Model(&entity.ScanReportDried{}).Count(&dried).Error; err != nil {
		return 0, translate(err)
	}
	return fresh + dried, nil
}

// CountScansOn returns the combined scan count for one calendar day.
func (r *GormRepository) CountScansOn(ctx context.Context, day time.Time) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var fresh, dried int64
	if err := r.db.WithContext(ctx).Model(&entity.ScanReportFresh{}).
		Where("timestamp >= ? AND timestamp < ?", start, end).Count(&fresh).Error; err != nil {
		return 0, translate(err)
	}
	if err := r.db.WithContext(ctx).Model(&entity.ScanReportDried{}).
		Where("timestamp >= ? AND timestamp < ?", start, end).Count(&dried).Error; err != nil {
		return 0, translate(err)
	}
	return fresh + dried, nil
}

// MonthlyScanTotals aggregates scan counts per calendar month over the given
// trailing window. Aggregation happens in Go to stay portable across the
// supported SQL dialects.
func (r *GormRepository) MonthlyScanTotals(ctx context.Context, months int) ([]entity.MonthlyScanTotal, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if months <= 0 {
		months = 6
	}
	cutoff := time.Now().AddDate(0, -months, 0)

	totals := make(map[string]int64)
	for _, table := range []interface{}{&entity.ScanReportFresh{}, &entity.ScanReportDried{}} {
		var stamps []time.Time
		if err := r.db.WithContext(ctx).Model(table).
			Where("timestamp >= ?", cutoff).
			Pluck("timestamp", &stamps).Error; err != nil {
			return nil, translate(err)
		}
		for _, ts := range stamps {
			totals[ts.Format("2006-01")]++
		}
	}

	result := make([]entity.MonthlyScanTotal, 0, len(totals))
	for month, total := range totals {
		result = append(result, entity.MonthlyScanTotal{Month: month, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

// ListSpecies returns the seaweed species reference list.
func (r *GormRepository) ListSpecies(ctx context.Context) ([]entity.SeaweedSpecies, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var species []entity.SeaweedSpecies
	if err := r.db.WithContext(ctx).Order("species_id").Find(&species).Error; err != nil {
		return nil, translate(err)
	}
	return species, nil
}
