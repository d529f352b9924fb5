package source

import (
	"errors"
	"sync"
)

var (
	// ErrDuplicate means the message equals the most recently observed one.
	ErrDuplicate = errors.New("message already observed")
	// ErrFull means the queue has no room and the message was dropped.
	ErrFull = errors.New("message queue full")
)

// Queue is the in-process message source the watcher side posts into and the
// order worker drains. Deduplication is a single slot: a message is dropped
// only when it matches the last one observed. Two distinct orders arriving
// back to back can shadow each other if the second repeats the first's text
// later; that gap is inherited from the observation model and left as is.
type Queue struct {
	mu       sync.Mutex
	lastSeen string
	messages chan string
}

func NewQueue(size int) *Queue {
	return &Queue{messages: make(chan string, size)}
}

// Offer submits raw chat text for matching.
func (q *Queue) Offer(raw string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if raw == q.lastSeen {
		return ErrDuplicate
	}

	select {
	case q.messages <- raw:
		q.lastSeen = raw
		return nil
	default:
		return ErrFull
	}
}

// Messages yields raw texts in arrival order.
func (q *Queue) Messages() <-chan string {
	return q.messages
}
