package store

// HealthStore abstracts database health checks
type HealthStore interface {
	// CheckConnectivity verifies the database is reachable
	CheckConnectivity() error
}
