package quiz

type EventType string

const (
	EventStarted  EventType = "started"
	EventTick     EventType = "tick"
	EventTimeUp   EventType = "time_up"
	EventRevealed EventType = "revealed"
	EventAdvanced EventType = "advanced"
	EventFinished EventType = "finished"
	EventReset    EventType = "reset"
)

// Event describes a state change. Question is 1-based; Remaining is only
// set for timed runs.
type Event struct {
	Type      EventType `json:"type"`
	State     State     `json:"state"`
	Question  int       `json:"question"`
	Total     int       `json:"total"`
	Score     int       `json:"score"`
	Remaining int       `json:"remaining,omitempty"`
}

// Observer is notified after each state change, outside the engine lock.
type Observer interface {
	QuizEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) QuizEvent(ev Event) { f(ev) }

type nopObserver struct{}

func (nopObserver) QuizEvent(Event) {}
