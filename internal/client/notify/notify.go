// Package notify keeps short-lived user-facing messages. Each notification
// disappears after a fixed TTL unless dismissed earlier.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 6 * time.Second

type Severity int

const (
	Success Severity = iota
	Info
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Info:
		return "info"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

type Notification struct {
	ID        string
	Severity  Severity
	Message   string
	CreatedAt time.Time
}

// Sink is told about every pushed notification, e.g. to print it.
type Sink func(Notification)

// Center is safe for concurrent use.
type Center struct {
	ttl  time.Duration
	sink Sink
	now  func() time.Time

	mu     sync.Mutex
	seq    uint64
	active map[string]*entry
}

type entry struct {
	n     Notification
	seq   uint64
	timer *time.Timer
}

type Option func(*Center)

// WithTTL overrides DefaultTTL. Non-positive values keep notifications until
// they are dismissed.
func WithTTL(d time.Duration) Option {
	return func(c *Center) { c.ttl = d }
}

func WithSink(s Sink) Option {
	return func(c *Center) { c.sink = s }
}

func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:    DefaultTTL,
		now:    time.Now,
		active: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Center) Push(sev Severity, message string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Severity:  sev,
		Message:   message,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	c.seq++
	e := &entry{n: n, seq: c.seq}
	c.active[n.ID] = e
	if c.ttl > 0 {
		e.timer = time.AfterFunc(c.ttl, func() { c.expire(n.ID, e) })
	}
	c.mu.Unlock()

	if c.sink != nil {
		c.sink(n)
	}
	return n
}

func (c *Center) Success(message string) Notification { return c.Push(Success, message) }
func (c *Center) Error(message string) Notification   { return c.Push(Error, message) }

// Dismiss removes a notification early. It reports whether it was active.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.active[id]
	if !ok {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(c.active, id)
	return true
}

// Active lists current notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	entries := make([]*entry, 0, len(c.active))
	for _, e := range c.active {
		entries = append(entries, e)
	}
	c.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]Notification, len(entries))
	for i, e := range entries {
		out[i] = e.n
	}
	return out
}

// Close stops pending timers and drops everything.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.active {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.active, id)
	}
}

func (c *Center) expire(id string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Ignore a timer that fired after Dismiss.
	if cur, ok := c.active[id]; ok && cur == e {
		delete(c.active, id)
	}
}
