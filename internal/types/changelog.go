package types

import "fmt"

// ChangeLog is the ordered, append-only list of human-readable entries
// describing every field-level change made while normalizing a record. It is
// diagnostic output only and is never persisted as part of the record.
type ChangeLog struct {
	entries []string
}

// Add appends one entry.
func (l *ChangeLog) Add(entry string) {
	l.entries = append(l.entries, entry)
}

// Addf appends one formatted entry.
func (l *ChangeLog) Addf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Merge appends all entries from another log, preserving order.
func (l *ChangeLog) Merge(other ChangeLog) {
	l.entries = append(l.entries, other.entries...)
}

// Entries returns the entries in append order.
func (l *ChangeLog) Entries() []string {
	return l.entries
}

// Len returns the number of entries.
func (l *ChangeLog) Len() int {
	return len(l.entries)
}
