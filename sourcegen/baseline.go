package sourcegen

import "time"

// Profile describes a source's baseline volume: an expected hourly rate at
// the busiest hour, a diurnal curve, and a weekend damping factor. The
// realized count per hour is a Poisson draw on the cell's deterministic
// stream, so re-runs with the same seed reproduce the same counts.
type Profile struct {
	// PeakRate is the expected events per hour at curve value 1.0.
	PeakRate float64
	// Curve maps hour-of-day to a multiplier in [0, 1].
	Curve [24]float64
	// WeekendFactor damps Saturday and Sunday volume.
	WeekendFactor float64
}

// Mean returns the expected event count for one hour before scaling.
func (p Profile) Mean(weekday time.Weekday, hour int) float64 {
	mean := p.PeakRate * p.Curve[hour]
	if weekday == time.Saturday || weekday == time.Sunday {
		mean *= p.WeekendFactor
	}
	return mean
}

// officeCurve follows the workday: quiet nights, ramp from 07:00, lunch dip,
// decline after 18:00.
var officeCurve = [24]float64{
	0.02, 0.02, 0.01, 0.01, 0.02, 0.05, 0.15, 0.40,
	0.75, 0.95, 1.00, 0.90, 0.70, 0.85, 0.95, 0.90,
	0.80, 0.60, 0.35, 0.20, 0.12, 0.08, 0.05, 0.03,
}

// infraCurve is the flatter rhythm of servers and network gear, with a small
// overnight batch bump.
var infraCurve = [24]float64{
	0.55, 0.50, 0.60, 0.65, 0.55, 0.50, 0.60, 0.70,
	0.85, 0.95, 1.00, 0.95, 0.90, 0.95, 1.00, 0.95,
	0.90, 0.85, 0.75, 0.70, 0.65, 0.60, 0.55, 0.55,
}

// publicCurve follows customer traffic on public-facing services: broader
// than office hours, busiest in the evening.
var publicCurve = [24]float64{
	0.25, 0.18, 0.12, 0.10, 0.10, 0.12, 0.20, 0.35,
	0.55, 0.70, 0.80, 0.85, 0.90, 0.90, 0.85, 0.85,
	0.90, 0.95, 1.00, 1.00, 0.90, 0.70, 0.50, 0.35,
}
