package store

import (
	"time"

	"topodaily/pkg/model"
)

// RecordFilter narrows record queries. Zero values mean "no constraint".
type RecordFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Village    string
	Region     string
	Commune    string
	Type       string
	Appareil   string
	Topographe string
}

// FilterOptions holds the distinct values of each filterable column,
// used to populate filter dropdowns.
type FilterOptions struct {
	Villages    []string `json:"villages"`
	Regions     []string `json:"regions"`
	Communes    []string `json:"communes"`
	Types       []string `json:"types"`
	Appareils   []string `json:"appareils"`
	Topographes []string `json:"topographes"`
}

// RecordsStore abstracts survey record storage operations
type RecordsStore interface {
	// CreateRecord inserts one survey record
	CreateRecord(record *model.SurveyRecord) error

	// FetchRecord retrieves a record by id
	FetchRecord(id int64) (*model.SurveyRecord, error)

	// ListRecords returns records matching the filter, newest date first.
	// A limit of 0 means no limit.
	ListRecords(filter RecordFilter, limit int) ([]model.SurveyRecord, error)

	// CountRecords counts records matching the filter
	CountRecords(filter RecordFilter) (int64, error)

	// DeleteRecord removes a record by id
	DeleteRecord(id int64) error

	// FilterOptions returns the distinct values of each filterable column
	FilterOptions() (*FilterOptions, error)
}
