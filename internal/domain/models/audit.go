package models

import "time"

// AuditAction classifies an audit trail event.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
	AuditError  AuditAction = "error"
)

// AuditEntry records one change made through the dashboard.
type AuditEntry struct {
	ID        int         `json:"id"`
	Action    AuditAction `json:"action"`
	Section   string      `json:"section"`
	Details   string      `json:"details"`
	Timestamp time.Time   `json:"timestamp"`
}
