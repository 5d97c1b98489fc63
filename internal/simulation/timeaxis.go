// Package simulation runs the irradiance-to-energy conversion pipeline:
// it builds the timestamp axis, computes solar geometry and clear-sky
// irradiance, drives the bifacial view-factor model, converts the result
// to cell temperature and DC power, and integrates hourly energy.
package simulation

import (
	"fmt"
	"time"
)

// FixedOffsetZone returns a fixed-offset location for the given whole-hour
// UTC offset, e.g. -1 for UTC-01:00.
func FixedOffsetZone(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+03d:00", offsetHours), offsetHours*3600)
}

// TimeAxis returns evenly spaced timestamps from start to end inclusive.
// A one-minute step over a full day therefore yields 1441 points, matching
// the closed-interval convention of the reference scenario.
func TimeAxis(start, end time.Time, step time.Duration) []time.Time {
	if step <= 0 || end.Before(start) {
		return nil
	}
	var axis []time.Time
	for t := start; !t.After(end); t = t.Add(step) {
		axis = append(axis, t)
	}
	return axis
}
