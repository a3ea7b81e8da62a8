// Package search sequences the full pipeline: classification, specialty
// detection, retrieval, scoring, trajectory filtering, reranking, and
// result assembly.
package search

import (
	"sync"
	"time"
)

// Pipeline stages, in execution order.
const (
	StageClassify   = "classify"
	StageSpecialty  = "specialty_detection"
	StageRetrieve   = "retrieval"
	StageScore      = "scoring"
	StageTrajectory = "trajectory_filter"
	StageRerank     = "rerank"
	StageAssemble   = "assemble"
)

// StageEvent is one stage transition in a search request.
type StageEvent struct {
	RequestID string    `json:"request_id"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

// Broadcaster fans stage events out to subscribers. Slow subscribers drop
// events rather than stalling the pipeline.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan StageEvent
}

// NewBroadcaster creates an event broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan StageEvent)}
}

// Subscribe returns a channel of stage events and a cancel function that
// must be called to release the subscription.
func (b *Broadcaster) Subscribe() (<-chan StageEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan StageEvent, 32)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Emit delivers an event to every subscriber without blocking.
func (b *Broadcaster) Emit(event StageEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
