// services/clock.go
package services

import "time"

// RoundToHour snaps t to the nearest whole hour in UTC. Generation always runs on a
// rounded "now" so windows line up across processes.
func RoundToHour(t time.Time) time.Time {
	return t.UTC().Round(time.Hour)
}
