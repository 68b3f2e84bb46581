package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

// Console prints status lines for local runs and non-GitHub CI hosts.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
	debug    bool
}

// NewConsole returns a console sink. Debug messages are dropped unless debug
// is set.
func NewConsole(out io.Writer, colorize, debug bool) *Console {
	return &Console{out: out, colorize: colorize, debug: debug}
}

func (c *Console) Debug(message string) {
	if c.debug {
		c.write(LevelDebug, message)
	}
}

func (c *Console) Info(message string)   { c.write(LevelInfo, message) }
func (c *Console) Notice(message string) { c.write(LevelNotice, message) }
func (c *Console) Fail(message string)   { c.write(LevelFail, message) }

func (c *Console) write(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, RenderLine(level, message, c.colorize))
}

// RenderLine formats a message for a terminal. Info lines are printed bare.
func RenderLine(level Level, message string, colorize bool) string {
	label := levelLabel(level)
	if label == "" {
		return message
	}
	line := fmt.Sprintf("[%s] %s", label, message)
	if colorize {
		if color := levelColor(level); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func levelLabel(level Level) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelNotice:
		return "OK"
	case LevelFail:
		return "ERROR"
	default:
		return ""
	}
}

func levelColor(level Level) string {
	switch level {
	case LevelDebug:
		return ansiBlue
	case LevelNotice:
		return ansiGreen
	case LevelFail:
		return ansiRed
	default:
		return ""
	}
}

// ShouldColorize reports whether writer is an interactive terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
