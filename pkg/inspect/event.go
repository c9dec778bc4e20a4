package inspect

import "time"

// Kind identifies the runtime notification an Event was built from.
type Kind string

const (
	KindEffectCreated  Kind = "effect_created"
	KindEffectStarted  Kind = "effect_started"
	KindEffectFinished Kind = "effect_finished"
	KindEffectStopped  Kind = "effect_stopped"
	KindTriggered      Kind = "triggered"
	KindScopeDisposed  Kind = "scope_disposed"
)

// Event is one runtime notification as sent to subscribers.
type Event struct {
	// Seq increases by one per event published by a Hub.
	Seq  uint64 `json:"seq"`
	Kind Kind   `json:"kind"`

	Effect uint64 `json:"effect,omitempty"`
	Name   string `json:"name,omitempty"`

	Target    string `json:"target,omitempty"`
	Op        string `json:"op,omitempty"`
	Scheduled int    `json:"scheduled,omitempty"`

	DurationNS int64 `json:"duration_ns,omitempty"`
	Panicked   bool  `json:"panicked,omitempty"`

	Scope uint64 `json:"scope,omitempty"`

	Time time.Time `json:"time"`
}
