package netmon

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/milk9111/striker/common"
)

// trafficMix is the relative frequency of generated traffic.
var trafficMix = []struct {
	weighted common.Weighted
	packet   Packet
}{
	{common.Weighted{Name: "tcp", Weight: 6}, Packet{EtherType: EtherTypeIPv4, IPProto: ProtoTCP, Length: 1500}},
	{common.Weighted{Name: "udp", Weight: 3}, Packet{EtherType: EtherTypeIPv4, IPProto: ProtoUDP, Length: 512}},
	{common.Weighted{Name: "icmp", Weight: 1}, Packet{EtherType: EtherTypeIPv4, IPProto: ProtoICMP, Length: 84}},
	{common.Weighted{Name: "arp", Weight: 1}, Packet{EtherType: EtherTypeARP, Length: 42}},
	{common.Weighted{Name: "ipv6-other", Weight: 1}, Packet{EtherType: EtherTypeIPv6, IPProto: 0, Length: 72}},
}

// SyntheticSource generates a random packet stream. It stands in for live
// capture when none is configured.
type SyntheticSource struct {
	rng      *common.PRNG
	interval time.Duration
	table    []common.Weighted
	packets  map[string]Packet
	done     chan struct{}
	once     sync.Once
}

// NewSyntheticSource emits on average one packet per interval.
func NewSyntheticSource(seed int64, interval time.Duration) *SyntheticSource {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	s := &SyntheticSource{
		rng:      common.NewPRNG(seed),
		interval: interval,
		packets:  make(map[string]Packet, len(trafficMix)),
		done:     make(chan struct{}),
	}
	for _, m := range trafficMix {
		s.table = append(s.table, m.weighted)
		s.packets[m.weighted.Name] = m.packet
	}
	return s
}

func (s *SyntheticSource) Next(ctx context.Context) (Packet, error) {
	wait := time.Duration(s.rng.Range(0.5, 1.5) * float64(s.interval))
	t := time.NewTimer(wait)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return Packet{}, ctx.Err()
	case <-s.done:
		return Packet{}, io.EOF
	case <-t.C:
	}
	return s.packets[s.rng.ChooseWeighted(s.table)], nil
}

func (s *SyntheticSource) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
