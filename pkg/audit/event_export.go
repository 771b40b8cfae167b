package audit

import (
	"fmt"
	"strconv"
)

// ExportEvent represents a CSV export audit event.
type ExportEvent struct {
	Username string
	Rows     int64
	ClientIP string
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	return fmt.Sprintf("%s exported %d survey records", e.Username, e.Rows)
}

func (e ExportEvent) Severity() Severity {
	return SeverityInfo
}

func (e ExportEvent) Facility() int {
	return FacilityUser
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "export",
			"rows":      strconv.FormatInt(e.Rows, 10),
		},
	}
}
