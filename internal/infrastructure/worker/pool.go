// Package worker runs queued tasks on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"sync"

	"fretor/pkg/logger"
)

// Task is one unit of queued work.
type Task struct {
	ID       string
	TenantID int64
	Execute  func(ctx context.Context)
}

// ErrQueueFull is returned when the queue cannot accept more tasks.
var ErrQueueFull = errors.New("worker queue is full")

// ErrStopped is returned when the pool is no longer accepting tasks.
var ErrStopped = errors.New("worker pool is stopped")

// Pool is a bounded FIFO worker pool. Submit never blocks: a full queue is
// reported to the caller instead of stalling the request path.
type Pool struct {
	queue   chan Task
	log     *logger.Logger
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(workers, queueSize int, log *logger.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:   make(chan Task, queueSize),
		log:     log.WithComponent("worker"),
		baseCtx: ctx,
		cancel:  cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run(i)
	}
	return p
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for task := range p.queue {
		p.log.Debugw("task started", "worker", id, "task_id", task.ID, "tenant_id", task.TenantID)
		p.safeExecute(task)
		p.log.Debugw("task finished", "worker", id, "task_id", task.ID)
	}
}

// safeExecute isolates panics so one bad task cannot take a worker down.
func (p *Pool) safeExecute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("task panicked", "task_id", task.ID, "panic", r)
		}
	}()
	task.Execute(p.baseCtx)
}

// QueueLen reports how many tasks are waiting for a worker.
func (p *Pool) QueueLen() int {
	return len(p.queue)
}

// Dispatch queues a task for execution. The function receives the pool's
// base context, which is cancelled on Stop.
func (p *Pool) Dispatch(id string, tenantID int64, fn func(ctx context.Context)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrStopped
	}
	select {
	case p.queue <- Task{ID: id, TenantID: tenantID, Execute: fn}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new tasks and waits for the workers to drain the queue.
// Already-running tasks finish; their own timeouts bound how long that takes.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
