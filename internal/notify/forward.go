package notify

import (
	"context"
	"log/slog"
	"time"

	"eccdeploy/internal/logging"
)

const forwardTimeout = 15 * time.Second

// Forwarder passes every message to the wrapped sink and publishes Notice and
// Fail to a Publisher. Publication errors are logged and otherwise ignored.
type Forwarder struct {
	next      Sink
	publisher Publisher
	logger    *slog.Logger
	title     string
}

// NewForwarder wraps next.
func NewForwarder(next Sink, publisher Publisher, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		next:      next,
		publisher: publisher,
		logger:    logging.NewComponentLogger(logger, "notify"),
		title:     "eccdeploy",
	}
}

// WithTitle sets the prefix of published titles, usually the instance name.
func (f *Forwarder) WithTitle(title string) *Forwarder {
	if title != "" {
		f.title = title
	}
	return f
}

func (f *Forwarder) Debug(message string) { f.next.Debug(message) }
func (f *Forwarder) Info(message string)  { f.next.Info(message) }

func (f *Forwarder) Notice(message string) {
	f.next.Notice(message)
	f.publish(Message{
		Title: f.title + " - Deployed",
		Body:  message,
		Tags:  []string{"eccdeploy", "deploy", "completed"},
	})
}

func (f *Forwarder) Fail(message string) {
	f.next.Fail(message)
	f.publish(Message{
		Title:    f.title + " - Deployment Failed",
		Body:     message,
		Tags:     []string{"eccdeploy", "deploy", "error"},
		Priority: "high",
	})
}

func (f *Forwarder) publish(msg Message) {
	if f.publisher == nil {
		return
	}
	// The run context may already be canceled when the outcome is reported.
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()
	if err := f.publisher.Publish(ctx, msg); err != nil {
		f.logger.Warn("ntfy forwarding failed", logging.Error(err))
	}
}
