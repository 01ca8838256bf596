// Package time holds small time helpers shared across the platform
package time

import "time"

// Ptr maps the zero time to nil, anything else to a pointer. Handy for
// optional JSON timestamps where zero means "never happened"
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
