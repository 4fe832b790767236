// Package cache provides age and expiry calculations for cached formula
// metadata. The functions are pure; the sqlite-backed store decides when to
// refresh based on them.
package cache

import "time"

const millisPerDay = 24 * 60 * 60 * 1000

// DaysOld returns the whole number of days elapsed between lastModified and
// now, truncated toward negative infinity. A lastModified in the future
// yields a negative result; callers are expected to pass past timestamps.
func DaysOld(lastModified, now time.Time) int {
	diff := now.UnixMilli() - lastModified.UnixMilli()
	days := diff / millisPerDay
	if diff < 0 && diff%millisPerDay != 0 {
		days--
	}
	return int(days)
}

// IsCacheValid reports whether data stamped at lastModified is still fresh
// against an expiry threshold in days. The comparison is strict: data that
// is exactly expiryDays old is stale.
func IsCacheValid(lastModified time.Time, expiryDays int) bool {
	return DaysOld(lastModified, time.Now()) < expiryDays
}
