package notify

import (
	"io"
	"log/slog"

	"eccdeploy/internal/config"
)

// Level classifies a reported message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelFail
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelNotice:
		return "notice"
	case LevelFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Sink receives user-facing messages. Fail marks the run as failed; the other
// levels are informational.
type Sink interface {
	Debug(message string)
	Info(message string)
	Notice(message string)
	Fail(message string)
}

// New selects the sink for the current host: workflow commands inside GitHub
// Actions, status lines otherwise. When an ntfy topic is configured the sink is
// wrapped in a Forwarder.
func New(cfg *config.Config, out io.Writer, logger *slog.Logger) Sink {
	var sink Sink
	if cfg.Env.GitHubActions() {
		sink = NewGitHub(out)
	} else {
		sink = NewConsole(out, ShouldColorize(out), cfg.Logging.Level == "debug")
	}
	if cfg.Notifications.NtfyTopic == "" {
		return sink
	}
	publisher := NewNtfy(cfg.Notifications.NtfyTopic, cfg.NotifyTimeout())
	return NewForwarder(sink, publisher, logger)
}
