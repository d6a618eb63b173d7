package feed

import "sync"

// queueCap bounds memory if the consumer stalls; the oldest updates are
// dropped first since only the latest values matter to the tick loop.
const queueCap = 10000

// Queue is the boundary between asynchronous market-data arrival and the
// tick loop. Producers push from any goroutine; the loop drains everything
// at the start of each tick.
type Queue struct {
	mu      sync.Mutex
	pending []Update
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(u Update) {
	if u == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, u)
	if len(q.pending) > queueCap {
		q.pending = q.pending[len(q.pending)-queueCap:]
	}
}

// Drain returns all pending updates in arrival order and empties the queue.
func (q *Queue) Drain() []Update {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len reports the number of pending updates.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
