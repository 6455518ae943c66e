package arena

import "cardclash/internal/domain"

// Event names published on match transitions.
type Event string

const (
	EventInitialized  Event = "initialized"
	EventStateChanged Event = "state_changed"
	EventResolved     Event = "resolved"
)

// Notifier is the live-update port. Publishing is fire-and-forget: a match
// resolves and stays queryable by id even when no consumer is listening, so
// implementations must never block the caller or return errors upward.
// Snapshots carry the full match state, not deltas, so consumers tolerate
// missed or duplicate events.
type Notifier interface {
	Publish(event Event, snapshot *domain.Match)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Publish(Event, *domain.Match) {}

// MultiNotifier fans one event out to several channels.
type MultiNotifier []Notifier

func (m MultiNotifier) Publish(event Event, snapshot *domain.Match) {
	for _, n := range m {
		n.Publish(event, snapshot)
	}
}
