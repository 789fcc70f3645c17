// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queue runs document conversions one at a time. Any number of
// documents may be enqueued; the next one starts only after the current
// one reaches COMPLETED or ERROR, which bounds rendering buffers and OCR
// engines to a single active set.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf2md/pkg/types"
)

var (
	// ErrClosed is returned by Enqueue after Shutdown.
	ErrClosed = errors.New("queue is shutting down")
	// ErrNotFound is returned for unknown item IDs.
	ErrNotFound = errors.New("queue item not found")
	// ErrBusy is returned when removing the item being processed.
	ErrBusy = errors.New("queue item is processing")
)

// Job is one document submitted for conversion.
type Job struct {
	// Name is the display name, used as the document title.
	Name string
	// Source optionally identifies where the document came from (a path).
	Source string
	// Data is the raw document. It is dropped once the job finishes.
	Data []byte
}

// Item is a snapshot of a queued job.
type Item struct {
	ID         uuid.UUID
	Name       string
	Source     string
	Size       int
	Status     types.ProcessingStatus
	Markdown   string
	Err        error
	EnqueuedAt time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// Handler converts one job to Markdown.
type Handler func(ctx context.Context, job Job) (string, error)

// Observer is notified after every status transition. It is called from
// the worker goroutine, one call at a time.
type Observer func(Item)

// Stats counts items by status.
type Stats struct {
	Total      int
	Idle       int
	Processing int
	Completed  int
	Failed     int
}

type entry struct {
	item Item
	data []byte
}

// Queue is a FIFO with a single worker.
type Queue struct {
	ctx      context.Context
	handler  Handler
	logger   *zap.Logger
	observer Observer
	timeout  time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	items   map[uuid.UUID]*entry
	order   []uuid.UUID
	pending []uuid.UUID
	closed  bool

	done chan struct{}
}

// Option configures a Queue.
type Option func(*Queue)

// WithObserver registers a status-transition callback.
func WithObserver(o Observer) Option {
	return func(q *Queue) { q.observer = o }
}

// WithTimeout bounds each conversion. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// New starts a queue whose worker runs handler under ctx.
func New(ctx context.Context, handler Handler, logger *zap.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		ctx:     ctx,
		handler: handler,
		logger:  logger,
		items:   make(map[uuid.UUID]*entry),
		done:    make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, o := range opts {
		o(q)
	}
	go q.run()
	return q
}

// Enqueue adds job in IDLE state and returns its ID.
func (q *Queue) Enqueue(job Job) (uuid.UUID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", zap.String("name", job.Name))
		return uuid.Nil, ErrClosed
	}

	id := uuid.New()
	q.items[id] = &entry{
		item: Item{
			ID:         id,
			Name:       job.Name,
			Source:     job.Source,
			Size:       len(job.Data),
			Status:     types.StatusIdle,
			EnqueuedAt: time.Now(),
		},
		data: job.Data,
	}
	q.order = append(q.order, id)
	q.pending = append(q.pending, id)
	q.cond.Signal()

	q.logger.Info("queued document", zap.String("id", id.String()), zap.String("name", job.Name))
	return id, nil
}

// Remove drops an item that is not currently processing. An IDLE item is
// removed before it ever starts.
func (q *Queue) Remove(id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if e.item.Status == types.StatusProcessing {
		return fmt.Errorf("%w: %s", ErrBusy, id)
	}
	delete(q.items, id)
	q.order = without(q.order, id)
	q.pending = without(q.pending, id)
	return nil
}

// Get returns a snapshot of the item.
func (q *Queue) Get(id uuid.UUID) (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.items[id]
	if !ok {
		return Item{}, false
	}
	return e.item, true
}

// Items returns snapshots of all items in enqueue order.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.items[id].item)
	}
	return out
}

// Stats counts items by status.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := Stats{Total: len(q.order)}
	for _, id := range q.order {
		switch q.items[id].item.Status {
		case types.StatusIdle, types.StatusPending:
			s.Idle++
		case types.StatusProcessing:
			s.Processing++
		case types.StatusCompleted:
			s.Completed++
		case types.StatusError:
			s.Failed++
		}
	}
	return s
}

// Shutdown stops accepting jobs and waits for the queued ones to finish.
// It returns ctx.Err() if ctx ends first; the worker keeps draining.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		q.logger.Info("queue drained, shutdown complete")
		return nil
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		id, ok := q.next()
		if !ok {
			return
		}
		q.process(id)
	}
}

// next blocks until a job is pending or the queue is closed and drained.
func (q *Queue) next() (uuid.UUID, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.pending) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.pending) == 0 {
		return uuid.Nil, false
	}
	id := q.pending[0]
	q.pending = q.pending[1:]
	return id, true
}

func (q *Queue) process(id uuid.UUID) {
	q.mu.Lock()
	e, ok := q.items[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	e.item.Status = types.StatusProcessing
	e.item.StartedAt = time.Now()
	job := Job{Name: e.item.Name, Source: e.item.Source, Data: e.data}
	started := e.item
	q.mu.Unlock()
	q.notify(started)

	md, err := q.invoke(job)

	q.mu.Lock()
	e.data = nil
	e.item.FinishedAt = time.Now()
	if err != nil {
		e.item.Status = types.StatusError
		e.item.Err = err
	} else {
		e.item.Status = types.StatusCompleted
		e.item.Markdown = md
	}
	finished := e.item
	q.mu.Unlock()

	if err != nil {
		q.logger.Error("conversion failed", zap.String("id", id.String()), zap.String("name", job.Name), zap.Error(err))
	} else {
		q.logger.Info("converted document", zap.String("id", id.String()), zap.String("name", job.Name),
			zap.Duration("elapsed", finished.FinishedAt.Sub(finished.StartedAt)))
	}
	q.notify(finished)
}

func (q *Queue) invoke(job Job) (md string, err error) {
	ctx := q.ctx
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			md, err = "", fmt.Errorf("conversion panicked: %v", r)
		}
	}()
	return q.handler(ctx, job)
}

func (q *Queue) notify(it Item) {
	if q.observer != nil {
		q.observer(it)
	}
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
