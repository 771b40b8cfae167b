package gorm

import (
	"errors"
	"fmt"

	"topodaily/pkg/model"
	"topodaily/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure RecordsStore implements store.RecordsStore
var _ store.RecordsStore = (*RecordsStore)(nil)

// RecordsStore implements store.RecordsStore using GORM
type RecordsStore struct {
	db *gorm.DB
}

// NewRecordsStore creates a new RecordsStore
func NewRecordsStore(db *gorm.DB) *RecordsStore {
	return &RecordsStore{db: db}
}

// applyFilter narrows a leves query to the rows matching the filter.
func applyFilter(tx *gorm.DB, filter store.RecordFilter) *gorm.DB {
	if filter.StartDate != nil {
		tx = tx.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		tx = tx.Where("date <= ?", *filter.EndDate)
	}
	if filter.Village != "" {
		tx = tx.Where("village = ?", filter.Village)
	}
	if filter.Region != "" {
		tx = tx.Where("region = ?", filter.Region)
	}
	if filter.Commune != "" {
		tx = tx.Where("commune = ?", filter.Commune)
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.Appareil != "" {
		tx = tx.Where("appareil = ?", filter.Appareil)
	}
	if filter.Topographe != "" {
		tx = tx.Where("topographe = ?", filter.Topographe)
	}
	return tx
}

// CreateRecord inserts one survey record.
func (s *RecordsStore) CreateRecord(record *model.SurveyRecord) error {
	return s.db.Create(record).Error
}

// FetchRecord retrieves a record by id.
func (s *RecordsStore) FetchRecord(id int64) (*model.SurveyRecord, error) {
	var record model.SurveyRecord
	tx := s.db.First(&record, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &record, nil
}

// ListRecords returns records matching the filter, newest date first.
// A limit of 0 means no limit.
func (s *RecordsStore) ListRecords(filter store.RecordFilter, limit int) ([]model.SurveyRecord, error) {
	var records []model.SurveyRecord
	tx := applyFilter(s.db.Model(&model.SurveyRecord{}), filter).Order("date DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	tx = tx.Find(&records)
	return records, tx.Error
}

// CountRecords counts records matching the filter.
func (s *RecordsStore) CountRecords(filter store.RecordFilter) (int64, error) {
	var count int64
	tx := applyFilter(s.db.Model(&model.SurveyRecord{}), filter).Count(&count)
	return count, tx.Error
}

// DeleteRecord removes a record by id.
func (s *RecordsStore) DeleteRecord(id int64) error {
	tx := s.db.Delete(&model.SurveyRecord{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// FilterOptions returns the distinct values of each filterable column.
func (s *RecordsStore) FilterOptions() (*store.FilterOptions, error) {
	options := &store.FilterOptions{}
	for column, dest := range map[string]*[]string{
		"village":    &options.Villages,
		"region":     &options.Regions,
		"commune":    &options.Communes,
		"type":       &options.Types,
		"appareil":   &options.Appareils,
		"topographe": &options.Topographes,
	} {
		query := fmt.Sprintf(
			"SELECT DISTINCT %s FROM leves WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s",
			column, column, column, column,
		)
		if err := s.db.Raw(query).Scan(dest).Error; err != nil {
			return nil, err
		}
	}
	return options, nil
}
