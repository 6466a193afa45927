package concurrent

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrScheduleTimeout = errors.New("schedule error: timed out")
	ErrPoolClosed      = errors.New("schedule error: pool closed")
)

// GoroutinePool. at most size goroutines run scheduled tasks, an idle goroutine picks the next queued task
// instead of a new one being spawned.
type GoroutinePool struct {
	sem  chan struct{}
	work chan func()
	done chan struct{}
	once sync.Once
}

func NewGoroutinePool(size, queue int) *GoroutinePool {
	if size < 1 {
		size = 1
	}
	return &GoroutinePool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn. starts n idle goroutines upfront, n is capped by the pool size.
func (p *GoroutinePool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(nil)
		default:
			return
		}
	}
}

// Schedule. blocks until a goroutine takes task or the pool is closed.
func (p *GoroutinePool) Schedule(task func()) error {
	return p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule but gives up with ErrScheduleTimeout when every goroutine stays busy for timeout.
func (p *GoroutinePool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *GoroutinePool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.done:
		return ErrPoolClosed
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *GoroutinePool) worker(task func()) {
	defer func() { <-p.sem }()

	if task != nil {
		task()
	}
	for {
		select {
		case <-p.done:
			return
		case task := <-p.work:
			task()
		}
	}
}

// Close. idle goroutines exit, running tasks finish, queued tasks may be dropped. closing twice is a no-op.
func (p *GoroutinePool) Close() {
	p.once.Do(func() {
		close(p.done)
	})
}
