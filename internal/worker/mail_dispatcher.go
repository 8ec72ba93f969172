package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const defaultSendTimeout = 30 * time.Second

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, email model.Email) error
}

// MailDispatcher sends queued emails from a fixed pool of goroutines.
type MailDispatcher struct {
	sender      Sender
	workers     int
	sendTimeout time.Duration
	logger      *slog.Logger

	jobs chan model.Email
	wg   sync.WaitGroup

	// mu guards stopped and cancel, and orders Enqueue against Stop.
	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
}

// NewMailDispatcher constructs the email worker pool.
func NewMailDispatcher(sender Sender, workers, queueSize int, logger *slog.Logger) *MailDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &MailDispatcher{
		sender:      sender,
		workers:     workers,
		sendTimeout: defaultSendTimeout,
		logger:      logger,
		jobs:        make(chan model.Email, queueSize),
	}
}

// Enqueue schedules email for delivery without blocking. It reports false
// when the queue is full or the dispatcher has been stopped.
func (d *MailDispatcher) Enqueue(email model.Email) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		d.logger.Error("email dropped, dispatcher stopped", slog.String("template", string(email.Template)))
		return false
	}
	select {
	case d.jobs <- email:
		return true
	default:
		d.logger.Error("email dropped, queue full", slog.String("template", string(email.Template)))
		return false
	}
}

// Start launches the workers.
func (d *MailDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil || d.stopped {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop cancels the workers and waits for them to flush what is already queued.
// No email is accepted once Stop has begun.
func (d *MailDispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *MailDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case email := <-d.jobs:
			d.send(ctx, email)
		}
	}
}

// drain sends whatever is left in the queue using fresh contexts.
func (d *MailDispatcher) drain() {
	for {
		select {
		case email := <-d.jobs:
			d.send(context.Background(), email)
		default:
			return
		}
	}
}

func (d *MailDispatcher) send(ctx context.Context, email model.Email) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, email); err != nil {
		d.logger.Error("send email failed",
			slog.String("template", string(email.Template)),
			slog.String("error", err.Error()))
		return
	}
	d.logger.Debug("email sent", slog.String("template", string(email.Template)))
}
