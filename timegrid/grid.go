// Package timegrid enumerates the simulation domain as an ordered sequence of
// (day, hour) cells anchored to a start date. It is the single clock every
// other component reads from.
package timegrid

import (
	"fmt"
	"time"
)

// Cell addresses one hour of the simulation. Immutable.
type Cell struct {
	Day  int
	Hour int
}

func (c Cell) String() string {
	return fmt.Sprintf("d%d/h%02d", c.Day, c.Hour)
}

// Grid maps cells to absolute UTC time windows.
type Grid struct {
	start time.Time
	days  int
}

// NewGrid builds a grid of days*24 cells starting at midnight UTC of start.
// A non-positive day count or a zero start date is a configuration error and
// is rejected before any generation begins.
func NewGrid(start time.Time, days int) (*Grid, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("time grid: start date is not set")
	}
	if days <= 0 {
		return nil, fmt.Errorf("time grid: invalid day count %d", days)
	}
	utc := start.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return &Grid{start: midnight, days: days}, nil
}

// Start returns the grid's anchor, midnight UTC of day 0.
func (g *Grid) Start() time.Time { return g.start }

// Days returns the number of simulated days.
func (g *Grid) Days() int { return g.days }

// Window converts a cell to its absolute hour window [from, to).
func (g *Grid) Window(c Cell) (time.Time, time.Time) {
	from := g.start.AddDate(0, 0, c.Day).Add(time.Duration(c.Hour) * time.Hour)
	return from, from.Add(time.Hour)
}

// Weekday reports the weekday of a simulated day.
func (g *Grid) Weekday(day int) time.Weekday {
	return g.start.AddDate(0, 0, day).Weekday()
}

// Cells returns every cell of the grid in ascending time order. The slice is
// freshly allocated per call, so iteration is restartable.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.days*24)
	for day := 0; day < g.days; day++ {
		for hour := 0; hour < 24; hour++ {
			cells = append(cells, Cell{Day: day, Hour: hour})
		}
	}
	return cells
}
