package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusconnect/admin-api/internal/services"
)

// BanEvent describes a committed ban status change to be mailed out.
type BanEvent struct {
	Email  string
	Name   string
	Banned bool
}

// Notifier delivers ban status emails off the request path. Events are
// queued on a bounded channel; when the queue is full, new events are
// dropped and logged rather than blocking the caller.
type Notifier struct {
	emailService services.EmailService
	logger       *slog.Logger
	events       chan BanEvent
	sendTimeout  time.Duration
	drainTimeout time.Duration
	stopCh       chan struct{}
	done         chan struct{}
}

// NewNotifier creates a new notifier with the given queue size
func NewNotifier(
	emailService services.EmailService,
	logger *slog.Logger,
	queueSize int,
	sendTimeout time.Duration,
	drainTimeout time.Duration,
) *Notifier {
	return &Notifier{
		emailService: emailService,
		logger:       logger,
		events:       make(chan BanEvent, queueSize),
		sendTimeout:  sendTimeout,
		drainTimeout: drainTimeout,
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// NotifyBanChange queues a ban status email. Never blocks.
func (n *Notifier) NotifyBanChange(email, name string, banned bool) {
	select {
	case n.events <- BanEvent{Email: email, Name: name, Banned: banned}:
	default:
		n.logger.Warn("notification queue full, dropping ban status email",
			slog.Bool("banned", banned))
	}
}

// Start consumes queued events until stopped. On stop, events already
// queued are drained within the drain timeout.
func (n *Notifier) Start(ctx context.Context) {
	defer close(n.done)
	for {
		select {
		case event := <-n.events:
			n.deliver(ctx, event)
		case <-n.stopCh:
			n.drain()
			n.logger.Info("notifier stopped")
			return
		case <-ctx.Done():
			n.logger.Info("notifier context cancelled")
			return
		}
	}
}

// deliver sends one email. Failures are logged and swallowed; the state
// change the email describes has already been committed.
func (n *Notifier) deliver(ctx context.Context, event BanEvent) {
	sendCtx, cancel := context.WithTimeout(ctx, n.sendTimeout)
	defer cancel()

	if err := n.emailService.SendBanStatusEmail(sendCtx, event.Email, event.Name, event.Banned); err != nil {
		n.logger.Warn("failed to deliver ban status email",
			slog.Bool("banned", event.Banned),
			slog.Any("error", err))
	}
}

func (n *Notifier) drain() {
	deadline := time.After(n.drainTimeout)
	drainCtx, cancel := context.WithTimeout(context.Background(), n.drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-n.events:
			n.deliver(drainCtx, event)
		case <-deadline:
			if remaining := len(n.events); remaining > 0 {
				n.logger.Warn("drain timeout, dropping queued notifications",
					slog.Int("remaining", remaining))
			}
			return
		default:
			return
		}
	}
}

// Stop signals the notifier to stop and waits for the drain to finish.
// Only valid after Start has been launched.
func (n *Notifier) Stop() {
	close(n.stopCh)
	<-n.done
}
