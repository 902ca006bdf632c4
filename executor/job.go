// File: executor/job.go
// License: Apache-2.0
//
// Pending task steps and the mutually-exclusive FIFO queue holding
// them.

package executor

import (
	"sync"

	"github.com/eapache/queue"
)

// job is one pending task step. A named job carries the stable name of
// the resource it serves; the name is re-resolved against the live set
// immediately before the step runs, and the job is discarded unrun when
// resolution fails.
type job struct {
	t     *task
	name  string
	named bool
}

// jobQueue is an ordered, mutex-guarded, multi-producer/single-consumer
// collection of pending jobs.
type jobQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newJobQueue() *jobQueue {
	return &jobQueue{q: queue.New()}
}

func (jq *jobQueue) push(j job) {
	jq.mu.Lock()
	jq.q.Add(j)
	jq.mu.Unlock()
}

// pop removes and returns the front job, if any.
func (jq *jobQueue) pop() (job, bool) {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	if jq.q.Length() == 0 {
		return job{}, false
	}
	return jq.q.Remove().(job), true
}

func (jq *jobQueue) len() int {
	jq.mu.Lock()
	defer jq.mu.Unlock()
	return jq.q.Length()
}
