package netmon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/milk9111/striker/bridge"
)

// Monitor is a bridge.Producer that classifies packets from a source.
type Monitor struct {
	src PacketSource

	seen         atomic.Uint64
	unclassified atomic.Uint64
	published    atomic.Uint64
}

func NewMonitor(src PacketSource) *Monitor {
	return &Monitor{src: src}
}

// Run reads until the source is exhausted or ctx is done. The source is
// closed on return.
func (m *Monitor) Run(ctx context.Context, publish func(bridge.Category) bool) error {
	if m.src == nil {
		return errors.New("netmon: no packet source")
	}
	defer func() {
		if err := m.src.Close(); err != nil {
			log.Printf("netmon: close source: %v", err)
		}
	}()

	for {
		p, err := m.src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("netmon: read packet: %w", err)
		}
		m.seen.Add(1)

		c, ok := Classify(p)
		if !ok {
			m.unclassified.Add(1)
			continue
		}
		if publish(c) {
			m.published.Add(1)
		}
	}
}

// Counts reports packets seen, packets the classifier ignored and events
// the bridge accepted.
func (m *Monitor) Counts() (seen, unclassified, published uint64) {
	return m.seen.Load(), m.unclassified.Load(), m.published.Load()
}
