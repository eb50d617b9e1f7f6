// Package bridge carries classifier events from a producer goroutine into the
// single-threaded simulation. Publishing never blocks and applies a
// per-category cooldown; draining never blocks and only returns events that
// were queued before the drain started.
package bridge

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	ErrAlreadyStarted = errors.New("bridge: producer already started")
	ErrStopTimeout    = errors.New("bridge: producer did not stop in time")
)

const (
	DefaultCooldown = time.Second
	DefaultCapacity = 256
)

// Category is a classifier tag.
type Category string

const (
	TCP  Category = "tcp"
	UDP  Category = "udp"
	ICMP Category = "icmp"
	ARP  Category = "arp"
)

// Categories lists every tag the bridge accepts.
var Categories = []Category{TCP, UDP, ICMP, ARP}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// SpawnEvent is one accepted classifier event.
type SpawnEvent struct {
	Category Category
	Time     time.Time
	Seq      uint64
}

// Producer generates classifier events until ctx is done. publish reports
// whether the event was accepted.
type Producer interface {
	Run(ctx context.Context, publish func(Category) bool) error
}

type ProducerFunc func(ctx context.Context, publish func(Category) bool) error

func (f ProducerFunc) Run(ctx context.Context, publish func(Category) bool) error {
	return f(ctx, publish)
}

type slot struct {
	// stamp is the last admission time in nanoseconds since the bridge
	// epoch, plus one. Zero means never admitted.
	stamp    atomic.Int64
	accepted atomic.Uint64
	dropped  atomic.Uint64
}

type Option func(*Bridge)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Bridge) {
		if now != nil {
			b.now = now
		}
	}
}

func WithCooldown(d time.Duration) Option {
	return func(b *Bridge) {
		if d >= 0 {
			b.cooldown = d
		}
	}
}

func WithCapacity(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.capacity = n
		}
	}
}

type Bridge struct {
	cooldown time.Duration
	capacity int
	now      func() time.Time
	epoch    time.Time

	slots map[Category]*slot
	queue chan SpawnEvent
	seq   atomic.Uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	runErr  error
	started bool
}

func New(opts ...Option) *Bridge {
	b := &Bridge{
		cooldown: DefaultCooldown,
		capacity: DefaultCapacity,
		now:      time.Now,
		slots:    make(map[Category]*slot, len(Categories)),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.epoch = b.now()
	b.queue = make(chan SpawnEvent, b.capacity)
	for _, c := range Categories {
		b.slots[c] = &slot{}
	}
	return b
}

// Publish offers one event. It returns false when the category is unknown,
// still cooling down, or the queue is full. It is safe for concurrent use
// and never blocks.
func (b *Bridge) Publish(c Category) bool {
	s, ok := b.slots[c]
	if !ok {
		return false
	}

	now := b.now()
	stamp := now.Sub(b.epoch).Nanoseconds() + 1
	var prev int64
	for {
		prev = s.stamp.Load()
		if prev != 0 && stamp-prev < int64(b.cooldown) {
			s.dropped.Add(1)
			return false
		}
		if s.stamp.CompareAndSwap(prev, stamp) {
			break
		}
	}

	evt := SpawnEvent{Category: c, Time: now, Seq: b.seq.Add(1)}
	select {
	case b.queue <- evt:
		s.accepted.Add(1)
		return true
	default:
		// A rejected event must not consume the cooldown window.
		s.stamp.CompareAndSwap(stamp, prev)
		s.dropped.Add(1)
		return false
	}
}

// Drain returns the events queued before the call, in queue order. It must
// only be called from the consuming goroutine.
func (b *Bridge) Drain() []SpawnEvent {
	n := len(b.queue)
	if n == 0 {
		return nil
	}
	out := make([]SpawnEvent, 0, n)
	for i := 0; i < n; i++ {
		select {
		case evt := <-b.queue:
			out = append(out, evt)
		default:
			return out
		}
	}
	return out
}

// Start runs p on its own goroutine. A producer error is logged and the
// bridge keeps working with no further events.
func (b *Bridge) Start(ctx context.Context, p Producer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return ErrAlreadyStarted
	}
	b.started = true

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := p.Run(gctx, b.Publish)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("bridge: producer stopped: %v", err)
			return err
		}
		return nil
	})

	done := make(chan struct{})
	b.cancel = cancel
	b.done = done
	go func() {
		err := g.Wait()
		b.mu.Lock()
		b.runErr = err
		b.mu.Unlock()
		close(done)
	}()
	return nil
}

// Stop cancels the producer and waits up to timeout for it to return. On
// timeout the producer goroutine is abandoned.
func (b *Bridge) Stop(timeout time.Duration) error {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		log.Printf("bridge: producer still running after %s, abandoning it", timeout)
		return ErrStopTimeout
	}
}

// Err returns the producer's failure, if it has stopped with one.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.runErr
}

// Stats is a point-in-time copy of the bridge counters.
type Stats struct {
	Accepted map[Category]uint64
	Dropped  map[Category]uint64
	Queued   int
}

func (s Stats) TotalAccepted() uint64 {
	var n uint64
	for _, v := range s.Accepted {
		n += v
	}
	return n
}

func (b *Bridge) Stats() Stats {
	st := Stats{
		Accepted: make(map[Category]uint64, len(b.slots)),
		Dropped:  make(map[Category]uint64, len(b.slots)),
		Queued:   len(b.queue),
	}
	for c, s := range b.slots {
		st.Accepted[c] = s.accepted.Load()
		st.Dropped[c] = s.dropped.Load()
	}
	return st
}
