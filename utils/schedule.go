package utils

import (
	"time"
)

// generationInterval mirrors the external scheduler cadence for quote
// generation: every 2 hours on the hour, UTC.
const generationInterval = 2

// NextGenerationTime returns the next even-hour UTC boundary at or
// after now. Within the first minute of a boundary the boundary itself
// is returned, since the scheduler may still fire.
func NextGenerationTime(now time.Time) time.Time {
	t := now.UTC()
	boundary := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)

	if boundary.Hour()%generationInterval != 0 {
		return boundary.Add(time.Hour)
	}
	if t.Sub(boundary) < time.Minute {
		return boundary
	}
	return boundary.Add(generationInterval * time.Hour)
}
