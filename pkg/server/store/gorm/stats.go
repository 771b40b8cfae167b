package gorm

import (
	"fmt"

	"topodaily/pkg/model"
	"topodaily/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure StatsStore implements store.StatsStore
var _ store.StatsStore = (*StatsStore)(nil)

// StatsStore implements store.StatsStore using GORM
type StatsStore struct {
	db *gorm.DB
}

// NewStatsStore creates a new StatsStore
func NewStatsStore(db *gorm.DB) *StatsStore {
	return &StatsStore{db: db}
}

// groupByColumns whitelists the columns a GroupBy dimension may reference.
// Dimension names are interpolated into SQL and must never come from the
// request unchecked.
var groupByColumns = map[string]string{
	store.DimensionType:       "type",
	store.DimensionRegion:     "region",
	store.DimensionCommune:    "commune",
	store.DimensionVillage:    "village",
	store.DimensionAppareil:   "appareil",
	store.DimensionTopographe: "topographe",
}

// Summarize returns count, total and mean quantity for a filter.
func (s *StatsStore) Summarize(filter store.RecordFilter) (*store.Summary, error) {
	var summary store.Summary
	tx := applyFilter(s.db.Model(&model.SurveyRecord{}), filter).
		Select("COUNT(*) AS count, COALESCE(SUM(quantite), 0) AS total_quantity, COALESCE(AVG(quantite), 0) AS mean_quantity").
		Scan(&summary)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &summary, nil
}

// GroupBy returns quantity totals grouped by one dimension, largest
// quantity first.
func (s *StatsStore) GroupBy(filter store.RecordFilter, dimension string) ([]store.Bucket, error) {
	column, ok := groupByColumns[dimension]
	if !ok {
		return nil, fmt.Errorf("unknown dimension: %s", dimension)
	}

	var buckets []store.Bucket
	tx := applyFilter(s.db.Model(&model.SurveyRecord{}), filter).
		Select(fmt.Sprintf("%s AS label, COUNT(*) AS count, COALESCE(SUM(quantite), 0) AS quantity", column)).
		Group(column).
		Order("quantity DESC, label").
		Scan(&buckets)
	return buckets, tx.Error
}

// Timeline returns per-day or per-month totals in chronological order.
func (s *StatsStore) Timeline(filter store.RecordFilter, interval string) ([]store.TimePoint, error) {
	var format string
	switch interval {
	case store.IntervalDay:
		format = "YYYY-MM-DD"
	case store.IntervalMonth:
		format = "YYYY-MM"
	default:
		return nil, fmt.Errorf("unknown interval: %s", interval)
	}

	var points []store.TimePoint
	tx := applyFilter(s.db.Model(&model.SurveyRecord{}), filter).
		Select(fmt.Sprintf("to_char(date_trunc('%s', date), '%s') AS period, COUNT(*) AS count, COALESCE(SUM(quantite), 0) AS quantity", interval, format)).
		Group("period").
		Order("period").
		Scan(&points)
	return points, tx.Error
}

// GlobalStats returns totals across all users and records.
func (s *StatsStore) GlobalStats() (*store.GlobalStats, error) {
	var stats store.GlobalStats
	tx := s.db.Raw(
		`SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM leves) AS records,
			(SELECT COALESCE(SUM(quantite), 0) FROM leves) AS total_quantity,
			(SELECT COUNT(DISTINCT village) FROM leves) AS villages`,
	).Scan(&stats)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &stats, nil
}
