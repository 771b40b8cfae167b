package audit

import "fmt"

// UserEvent represents a user management audit event (add or delete).
type UserEvent struct {
	Actor        string // who performed the operation
	Target       string // the account acted on
	Operation    string // "add" or "delete"
	Role         string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e UserEvent) MessageID() string {
	return "user"
}

func (e UserEvent) Message() string {
	verb := "added"
	if e.Operation == "delete" {
		verb = "deleted"
	}
	if e.Success {
		return fmt.Sprintf("%s %s user %s", e.Actor, verb, e.Target)
	}
	msg := fmt.Sprintf("%s failed to %s user %s", e.Actor, e.Operation, e.Target)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UserEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e UserEvent) Facility() int {
	return FacilityAuthPriv
}

func (e UserEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"user": e.Target,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation + "-user",
			"result":    result,
		},
	}
	if e.Role != "" {
		sd[SDIDSubject]["role"] = e.Role
	}
	return sd
}
