package common

import "time"

// DateLayout is the calendar date format used for every date-only field.
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// View selects which rows a listing returns with respect to soft deletion.
type View string

const (
	ViewActive  View = "active"
	ViewDeleted View = "deleted"
	ViewAll     View = "all"
)

// ViewFromString parses a view name; empty selects the active view.
func ViewFromString(s string) (View, bool) {
	switch View(s) {
	case "", ViewActive:
		return ViewActive, true
	case ViewDeleted:
		return ViewDeleted, true
	case ViewAll:
		return ViewAll, true
	default:
		return ViewActive, false
	}
}

// Includes reports whether a row with the given deletedAt belongs to the view.
func (v View) Includes(deletedAt *time.Time) bool {
	switch v {
	case ViewDeleted:
		return deletedAt != nil
	case ViewAll:
		return true
	default:
		return deletedAt == nil
	}
}

// CloneTime copies an optional timestamp so callers never share the pointer.
func CloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
