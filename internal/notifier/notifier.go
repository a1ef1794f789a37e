package notifier

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gologme/log"

	"github.com/thanhnp/chain-dns-dashboard/internal/view"
)

// Messages containing one of these force the terminal panel open
var expandMarkers = []string{"registered", "lookup"}

// LineHandler is called for every terminal line. It runs on the caller of Log
// and must not block.
type LineHandler func(line view.LogLine)

// Logger is the diagnostic channel every terminal line is mirrored to
type Logger interface {
	Infof(string, ...interface{})
}

// Sink is the feedback sink: two independent append-only panels of the page.
// Log and LogActivity write the page and must be called from the goroutine
// that owns it; handler registration is safe from anywhere.
type Sink struct {
	terminal *view.LogPanel
	activity *view.LogPanel
	log      Logger
	now      func() time.Time

	mu       sync.RWMutex
	nextID   int
	handlers map[int]LineHandler
}

// NewSink creates a sink writing into the page's terminal and activity panels
func NewSink(page *view.Page, logger Logger) *Sink {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Sink{
		terminal: &page.Terminal,
		activity: &page.Activity,
		log:      logger,
		now:      time.Now,
		handlers: make(map[int]LineHandler),
	}
}

// SetClock replaces the timestamp source
func (s *Sink) SetClock(now func() time.Time) {
	s.now = now
}

// Log appends a line to the terminal panel
func (s *Sink) Log(message string) {
	line := view.LogLine{At: s.now(), Text: message}
	s.terminal.Append(line)

	for _, marker := range expandMarkers {
		if strings.Contains(message, marker) {
			s.terminal.Expanded = true
			break
		}
	}

	s.log.Infof("Terminal: %s", message)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.handlers {
		h(line)
	}
}

// LogActivity appends a line to the activity panel
func (s *Sink) LogActivity(message string) {
	s.activity.Append(view.LogLine{At: s.now(), Text: message})
}

// Expand forces the terminal panel open
func (s *Sink) Expand() {
	s.terminal.Expanded = true
}

// Toggle flips the terminal panel and returns the new state
func (s *Sink) Toggle() bool {
	s.terminal.Expanded = !s.terminal.Expanded
	return s.terminal.Expanded
}

// OnLine registers a handler for terminal lines. The returned func removes it.
func (s *Sink) OnLine(handler LineHandler) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}
