package masterlist

import (
	"fmt"
	"sync"
	"time"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

// auditCapacity bounds the in-memory trail; oldest entries are dropped first.
const auditCapacity = 500

// AuditLog is an in-memory trail of changes made through the dashboard.
// It lives only as long as the process, matching the original session-scoped
// history panel.
type AuditLog struct {
	mu      sync.Mutex
	nextID  int
	entries []models.AuditEntry
	now     func() time.Time
}

// NewAuditLog creates an empty audit trail.
func NewAuditLog() *AuditLog {
	return &AuditLog{nextID: 1, now: time.Now}
}

// Record appends one event to the trail.
func (l *AuditLog) Record(action models.AuditAction, section, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, models.AuditEntry{
		ID:        l.nextID,
		Action:    action,
		Section:   section,
		Details:   fmt.Sprintf(format, args...),
		Timestamp: l.now().UTC(),
	})
	l.nextID++

	if len(l.entries) > auditCapacity {
		l.entries = l.entries[len(l.entries)-auditCapacity:]
	}
}

// Entries returns the trail newest first.
func (l *AuditLog) Entries() []models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AuditEntry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}
	return out
}
