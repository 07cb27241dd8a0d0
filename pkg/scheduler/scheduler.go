package scheduler

import (
	"context"
	"fmt"
	"sync"
)

// Work is a unit of work run by a Scheduler worker.
type Work[T any] func(ctx context.Context) (T, error)

// Result is the outcome of a Work.
type Result[T any] struct {
	Data T
	Err  error
}

type workRequest struct {
	fn     Work[any]
	c      chan Result[any]
	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduler runs work on a fixed number of workers. Work waiting for a
// worker is started in FIFO order.
type Scheduler struct {
	lock    sync.Mutex
	cond    *sync.Cond
	pending queue[workRequest]
	closed  bool

	wg         sync.WaitGroup
	mainCtx    context.Context
	mainCancel context.CancelFunc
}

func NewScheduler(nbWorkers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	s.cond = sync.NewCond(&s.lock)

	for range max(nbWorkers, 1) {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// AddWork queues w. The returned future resolves with context.Canceled when
// the scheduler is closed before w starts.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)
	r := workRequest{fn: w, c: c, ctx: ctx, cancel: cancel}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		cancel()
		c <- Result[any]{Err: context.Canceled}
		return newFuture(c, cancel)
	}

	s.pending.Push(r)
	s.cond.Signal()

	return newFuture(c, cancel)
}

// Close cancels running work, drops queued work and waits for the workers
// to return.
func (s *Scheduler) Close() {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return
	}
	s.closed = true
	for s.pending.Len() > 0 {
		r := s.pending.Pop()
		r.cancel()
		r.c <- Result[any]{Err: context.Canceled}
	}
	s.cond.Broadcast()
	s.lock.Unlock()

	s.mainCancel()
	s.wg.Wait()
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		s.lock.Lock()
		for s.pending.Len() == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.lock.Unlock()
			return
		}
		r := s.pending.Pop()
		s.lock.Unlock()

		r.c <- run(r)
		r.cancel()
	}
}

func run(r workRequest) (result Result[any]) {
	defer func() {
		if p := recover(); p != nil {
			result = Result[any]{Err: fmt.Errorf("worker panicked: %v", p)}
		}
	}()

	v, err := r.fn(r.ctx)
	return Result[any]{Data: v, Err: err}
}
