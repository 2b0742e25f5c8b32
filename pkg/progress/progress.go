// Package progress defines the notification boundary between the scrape
// core and whatever front-end consumes it. Delivery is fire-and-forget;
// the core never depends on a concrete UI.
package progress

// Phase identifies which part of a scrape an event belongs to.
type Phase string

const (
	PhaseNavigation Phase = "navigation"
	PhaseParsing    Phase = "parsing"
	PhaseDownload   Phase = "download"
)

// Event is a single progress notification.
type Event struct {
	Phase      Phase
	Step       int
	TotalSteps int
	Message    string
	Percentage float64
}

// Sink receives progress events. Implementations must not block; the
// scrape core calls Notify inline.
type Sink interface {
	Notify(Event)
}

// NopSink discards all events. It is the default for headless and test use.
type NopSink struct{}

func (NopSink) Notify(Event) {}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// NewEvent builds an event with the percentage derived from step/total.
func NewEvent(phase Phase, step, totalSteps int, message string) Event {
	pct := 0.0
	if totalSteps > 0 {
		pct = float64(step) / float64(totalSteps) * 100
	}
	return Event{
		Phase:      phase,
		Step:       step,
		TotalSteps: totalSteps,
		Message:    message,
		Percentage: pct,
	}
}
