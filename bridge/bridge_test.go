package bridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	base time.Time
	off  atomic.Int64
}

func newFakeClock() *fakeClock {
	return &fakeClock{base: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.base.Add(time.Duration(c.off.Load())) }

func (c *fakeClock) Set(seconds float64) {
	c.off.Store(int64(seconds * float64(time.Second)))
}

func TestCooldownScenario(t *testing.T) {
	clock := newFakeClock()
	b := New(WithClock(clock.Now), WithCooldown(time.Second))

	clock.Set(0)
	assert.True(t, b.Publish(TCP))
	clock.Set(0.5)
	assert.False(t, b.Publish(TCP))
	clock.Set(1.1)
	assert.True(t, b.Publish(TCP))

	events := b.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, TCP, events[0].Category)
	assert.Less(t, events[0].Seq, events[1].Seq)

	st := b.Stats()
	assert.Equal(t, uint64(2), st.Accepted[TCP])
	assert.Equal(t, uint64(1), st.Dropped[TCP])
}

func TestCooldownIsPerCategory(t *testing.T) {
	clock := newFakeClock()
	b := New(WithClock(clock.Now))

	assert.True(t, b.Publish(TCP))
	assert.True(t, b.Publish(UDP))
	assert.True(t, b.Publish(ICMP))
	assert.True(t, b.Publish(ARP))
	assert.False(t, b.Publish(TCP))
	assert.False(t, b.Publish(Category("sctp")))

	events := b.Drain()
	require.Len(t, events, 4)
	assert.Equal(t, []Category{TCP, UDP, ICMP, ARP}, []Category{
		events[0].Category, events[1].Category, events[2].Category, events[3].Category,
	})
	assert.Nil(t, b.Drain())
}

func TestFullQueueRollsBackCooldown(t *testing.T) {
	clock := newFakeClock()
	b := New(WithClock(clock.Now), WithCapacity(1))

	require.True(t, b.Publish(TCP))
	clock.Set(2)
	assert.False(t, b.Publish(TCP), "queue full")

	b.Drain()
	assert.True(t, b.Publish(TCP), "rejected event must not start a cooldown")
	assert.Len(t, b.Drain(), 1)
}

func TestConcurrentPublishAndDrain(t *testing.T) {
	b := New(WithCooldown(0), WithCapacity(64))

	const publishers = 8
	const perPublisher = 2000
	var accepted atomic.Uint64
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := Categories[i%len(Categories)]
			for j := 0; j < perPublisher; j++ {
				if b.Publish(c) {
					accepted.Add(1)
				}
			}
		}(i)
	}

	stop := make(chan struct{})
	var drained []SpawnEvent
	doneDraining := make(chan struct{})
	go func() {
		defer close(doneDraining)
		for {
			select {
			case <-stop:
				drained = append(drained, b.Drain()...)
				return
			default:
				drained = append(drained, b.Drain()...)
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-doneDraining

	assert.Equal(t, int(accepted.Load()), len(drained))
	seen := make(map[uint64]bool, len(drained))
	for _, e := range drained {
		assert.False(t, seen[e.Seq], "duplicate seq %d", e.Seq)
		seen[e.Seq] = true
	}
	assert.Equal(t, accepted.Load(), b.Stats().TotalAccepted())
}

func TestConcurrentPublishRespectsCooldown(t *testing.T) {
	b := New(WithCooldown(time.Hour))

	var wg sync.WaitGroup
	var accepted atomic.Int32
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Publish(ARP) {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Len(t, b.Drain(), 1)
}

func TestStartStop(t *testing.T) {
	b := New(WithCooldown(0))
	started := make(chan struct{})

	err := b.Start(context.Background(), ProducerFunc(func(ctx context.Context, publish func(Category) bool) error {
		publish(UDP)
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	require.NoError(t, err)
	require.ErrorIs(t, b.Start(context.Background(), ProducerFunc(nil)), ErrAlreadyStarted)

	<-started
	require.NoError(t, b.Stop(time.Second))
	assert.NoError(t, b.Err())
	assert.Len(t, b.Drain(), 1)
}

func TestStopTimeout(t *testing.T) {
	b := New()
	release := make(chan struct{})
	defer close(release)

	require.NoError(t, b.Start(context.Background(), ProducerFunc(func(ctx context.Context, _ func(Category) bool) error {
		<-release
		return nil
	})))

	assert.ErrorIs(t, b.Stop(20*time.Millisecond), ErrStopTimeout)
}

func TestProducerFailureYieldsNoEvents(t *testing.T) {
	b := New()
	boom := errors.New("capture device missing")

	require.NoError(t, b.Start(context.Background(), ProducerFunc(func(context.Context, func(Category) bool) error {
		return boom
	})))

	require.Eventually(t, func() bool { return b.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, b.Err(), boom)
	assert.Nil(t, b.Drain())
	assert.NoError(t, b.Stop(time.Second))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" TCP ")
	assert.True(t, ok)
	assert.Equal(t, TCP, c)

	_, ok = ParseCategory("igmp")
	assert.False(t, ok)
}
