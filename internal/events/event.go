// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"records_portal_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Search Domain Events
// =============================================================================

// SearchPerformed is published after a federated search returns a page.
type SearchPerformed struct {
	BaseEvent
	UserID      string   `json:"userId"`
	Query       string   `json:"query"`
	EntityKinds []string `json:"entityKinds"`
	TotalCount  int      `json:"totalCount"`
	Returned    int      `json:"returned"`
	Offset      int      `json:"offset"`
	DurationMs  int64    `json:"durationMs"`
	Degraded    []string `json:"degraded,omitempty"`
}

func (e SearchPerformed) EventName() string { return "search.performed" }
