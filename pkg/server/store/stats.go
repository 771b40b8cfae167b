package store

// Summary aggregates the records matching a filter.
type Summary struct {
	Count         int64   `json:"count"`
	TotalQuantity int64   `json:"total_quantity"`
	MeanQuantity  float64 `json:"mean_quantity"`
}

// Bucket is one group in a group-by aggregate.
type Bucket struct {
	Label    string `json:"label"`
	Count    int64  `json:"count"`
	Quantity int64  `json:"quantity"`
}

// TimePoint is one period in a timeline aggregate.
type TimePoint struct {
	Period   string `json:"period"`
	Count    int64  `json:"count"`
	Quantity int64  `json:"quantity"`
}

// GlobalStats aggregates across all users and records.
type GlobalStats struct {
	Users         int64 `json:"users"`
	Records       int64 `json:"records"`
	TotalQuantity int64 `json:"total_quantity"`
	Villages      int64 `json:"villages"`
}

// Group-by dimensions accepted by StatsStore.GroupBy.
const (
	DimensionType       = "type"
	DimensionRegion     = "region"
	DimensionCommune    = "commune"
	DimensionVillage    = "village"
	DimensionAppareil   = "appareil"
	DimensionTopographe = "topographe"
)

// Timeline intervals accepted by StatsStore.Timeline.
const (
	IntervalDay   = "day"
	IntervalMonth = "month"
)

// StatsStore abstracts the aggregate queries behind the dashboard.
type StatsStore interface {
	// Summarize returns count, total and mean quantity for a filter.
	// An empty result set yields a zero Summary, not an error.
	Summarize(filter RecordFilter) (*Summary, error)

	// GroupBy returns quantity totals grouped by one of the Dimension*
	// constants, largest quantity first.
	GroupBy(filter RecordFilter, dimension string) ([]Bucket, error)

	// Timeline returns per-day or per-month totals in chronological order.
	Timeline(filter RecordFilter, interval string) ([]TimePoint, error)

	// GlobalStats returns totals across all users and records.
	GlobalStats() (*GlobalStats, error)
}
