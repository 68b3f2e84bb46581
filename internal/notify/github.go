package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// GitHub writes GitHub Actions workflow commands.
type GitHub struct {
	mu  sync.Mutex
	out io.Writer
}

// NewGitHub returns a sink writing workflow commands to out.
func NewGitHub(out io.Writer) *GitHub {
	return &GitHub{out: out}
}

func (g *GitHub) Debug(message string)  { g.command("debug", message) }
func (g *GitHub) Notice(message string) { g.command("notice", message) }
func (g *GitHub) Fail(message string)   { g.command("error", message) }

// Info writes a plain log line. Multi-line messages are kept as is.
func (g *GitHub) Info(message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintln(g.out, message)
}

func (g *GitHub) command(name, message string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintf(g.out, "::%s::%s\n", name, EscapeData(message))
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// EscapeData escapes a workflow command payload so it stays on one line.
func EscapeData(message string) string {
	return dataEscaper.Replace(message)
}
