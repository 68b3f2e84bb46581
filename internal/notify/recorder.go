package notify

import "sync"

// Entry is one recorded message.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every message in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Debug(message string)  { r.add(LevelDebug, message) }
func (r *Recorder) Info(message string)   { r.add(LevelInfo, message) }
func (r *Recorder) Notice(message string) { r.add(LevelNotice, message) }
func (r *Recorder) Fail(message string)   { r.add(LevelFail, message) }

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages recorded at level, in order.
func (r *Recorder) Messages(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Failed reports whether Fail was called.
func (r *Recorder) Failed() bool {
	return len(r.Messages(LevelFail)) > 0
}
