// Package core defines the common event schema shared by every source
// generator, scenario engine, and the output writer.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the common schema for all synthesized events.
// An Event is created by exactly one generator call, is never mutated after
// creation, and is consumed exactly once by the output writer.
type Event struct {
	EventID   string                 `json:"event_id"`
	Timestamp time.Time              `json:"timestamp"`
	Source    SourceID               `json:"source"`
	Host      string                 `json:"host,omitempty"`
	Severity  string                 `json:"severity,omitempty"`
	// DemoID carries the correlation tag of the scenario that produced this
	// event. Empty for baseline events.
	DemoID  string                 `json:"demo_id,omitempty"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields"`
}

// NewEvent creates a new Event for the given source and timestamp with a
// generated UUID.
func NewEvent(source SourceID, ts time.Time) *Event {
	return &Event{
		EventID:   uuid.New().String(),
		Timestamp: ts,
		Source:    source,
		Fields:    make(map[string]interface{}),
	}
}

// Tag stamps the event with a scenario correlation tag and returns the event
// for chaining during construction.
func (e *Event) Tag(demoID string) *Event {
	e.DemoID = demoID
	return e
}

// Set assigns a field value and returns the event for chaining during
// construction.
func (e *Event) Set(key string, value interface{}) *Event {
	e.Fields[key] = value
	return e
}
