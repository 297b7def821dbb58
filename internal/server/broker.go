package server

import (
	"encoding/json"
	"sync"

	"github.com/swisscitizen/prep/internal/quiz"
)

// TopicQuiz carries quiz engine events.
const TopicQuiz = "quiz"

// Broker is an in-process pub/sub for SSE events, keyed by topic.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for topic.
func (b *Broker) Subscribe(topic string) chan []byte {
	ch := make(chan []byte, 64)
	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan []byte]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(topic string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[topic], ch)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
	b.mu.Unlock()
}

// Publish sends v to every subscriber of topic. Slow subscribers miss events.
func (b *Broker) Publish(topic string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.mu.RLock()
	for ch := range b.subs[topic] {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}

// Subscribers reports how many channels listen on topic.
func (b *Broker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// QuizEvent forwards engine events to the quiz topic.
func (b *Broker) QuizEvent(ev quiz.Event) {
	b.Publish(TopicQuiz, ev)
}
