package audit

import (
	"fmt"
	"strconv"
)

// RecordEvent represents a survey record audit event (submit or delete).
type RecordEvent struct {
	Username     string
	Operation    string // "submit" or "delete"
	RecordID     int64
	Village      string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RecordEvent) MessageID() string {
	return "record"
}

func (e RecordEvent) Message() string {
	verb := "submitted"
	if e.Operation == "delete" {
		verb = "deleted"
	}
	if e.Success {
		return fmt.Sprintf("%s %s survey record %d", e.Username, verb, e.RecordID)
	}
	msg := fmt.Sprintf("%s failed to %s a survey record", e.Username, e.Operation)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RecordEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RecordEvent) Facility() int {
	return FacilityUser
}

func (e RecordEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation + "-record",
			"result":    result,
		},
	}
	if e.RecordID != 0 {
		sd[SDIDSubject] = map[string]string{"record": strconv.FormatInt(e.RecordID, 10)}
	}
	if e.Village != "" {
		if sd[SDIDSubject] == nil {
			sd[SDIDSubject] = map[string]string{}
		}
		sd[SDIDSubject]["village"] = e.Village
	}
	return sd
}
