package whisper

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/procne/internal/sim"
)

// Narrator runs each request in its own goroutine and delivers finished lines
// on a buffered channel. Lines that do not fit are dropped. Failures are
// logged and swallowed. It implements sim.Narrator.
type Narrator struct {
	gen     Generator
	timeout time.Duration
	lines   chan sim.Line
	logger  *log.Logger
	wg      sync.WaitGroup
}

// Option configures a Narrator.
type Option func(*Narrator)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(n *Narrator) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithQueueSize sets how many finished lines may wait for the frame loop.
func WithQueueSize(size int) Option {
	return func(n *Narrator) {
		if size > 0 {
			n.lines = make(chan sim.Line, size)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(n *Narrator) { n.logger = l }
}

// NewNarrator wraps a generator.
func NewNarrator(g Generator, opts ...Option) *Narrator {
	n := &Narrator{
		gen:     g,
		timeout: 8 * time.Second,
		lines:   make(chan sim.Line, 8),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Request starts generating a line for prompt, tagged with gen.
func (n *Narrator) Request(gen uint64, prompt string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		text, err := n.gen.Generate(ctx, prompt)
		if err != nil {
			n.logger.Warn("whisper failed", "generation", gen, "err", err)
			return
		}
		text = Clean(text)
		if text == "" {
			return
		}
		select {
		case n.lines <- sim.Line{Gen: gen, Text: text}:
		default:
			n.logger.Warn("whisper dropped, queue full", "generation", gen)
		}
	}()
}

// Lines returns the channel of finished lines.
func (n *Narrator) Lines() <-chan sim.Line { return n.lines }

// Wait blocks until every in-flight request has finished.
func (n *Narrator) Wait() { n.wg.Wait() }

// Clean keeps the first non-empty line of a response and strips wrapping quotes.
func Clean(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "\"'*_ ")
		if line != "" {
			return line
		}
	}
	return ""
}

var _ sim.Narrator = (*Narrator)(nil)
