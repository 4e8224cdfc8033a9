package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ErrQueueFull is returned when a notification cannot be queued without blocking.
var ErrQueueFull = errors.New("mail queue is full")

const sendTimeout = 30 * time.Second

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, msg model.Notification) error
}

// MailDispatcher queues notifications and delivers them with a pool of workers
// so request handlers never wait on SMTP.
type MailDispatcher struct {
	sender  Sender
	workers int
	logger  *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewMailDispatcher constructs mail worker pool.
func NewMailDispatcher(sender Sender, workers, queueSize int, logger *slog.Logger) *MailDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &MailDispatcher{
		sender:  sender,
		workers: workers,
		logger:  logger,
		jobs:    make(chan model.Notification, queueSize),
	}
}

// Notify enqueues msg. It never blocks.
func (d *MailDispatcher) Notify(msg model.Notification) error {
	select {
	case d.jobs <- msg:
		return nil
	default:
		d.logger.Warn("mail queue is full, dropping notification", slog.String("to", msg.To), slog.String("subject", msg.Subject))
		return ErrQueueFull
	}
}

// Start launches background delivery.
func (d *MailDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all workers to finish. Queued notifications are dropped.
func (d *MailDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
	if pending := len(d.jobs); pending > 0 {
		d.logger.Warn("mail dispatcher stopped with pending notifications", slog.Int("pending", pending))
	}
}

func (d *MailDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.jobs:
			d.deliver(ctx, msg)
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, msg model.Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, msg); err != nil {
		d.logger.Error("mail delivery failed", slog.String("to", msg.To), slog.String("subject", msg.Subject), slog.String("error", err.Error()))
		return
	}
	d.logger.Debug("mail delivered", slog.String("to", msg.To), slog.String("subject", msg.Subject))
}
