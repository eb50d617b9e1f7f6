package netmon_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/striker/bridge"
	"github.com/milk9111/striker/netmon"
	"github.com/milk9111/striker/netmon/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		packet netmon.Packet
		want   bridge.Category
		ok     bool
	}{
		{"arp", netmon.Packet{EtherType: netmon.EtherTypeARP}, bridge.ARP, true},
		{"tcp4", netmon.Packet{EtherType: netmon.EtherTypeIPv4, IPProto: netmon.ProtoTCP}, bridge.TCP, true},
		{"udp6", netmon.Packet{EtherType: netmon.EtherTypeIPv6, IPProto: netmon.ProtoUDP}, bridge.UDP, true},
		{"icmp4", netmon.Packet{EtherType: netmon.EtherTypeIPv4, IPProto: netmon.ProtoICMP}, bridge.ICMP, true},
		{"icmp6", netmon.Packet{EtherType: netmon.EtherTypeIPv6, IPProto: netmon.ProtoICMPv6}, bridge.ICMP, true},
		{"gre", netmon.Packet{EtherType: netmon.EtherTypeIPv4, IPProto: 47}, "", false},
		{"vlan", netmon.Packet{EtherType: 0x8100}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := netmon.Classify(tt.packet)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonitorPublishesClassifiedPackets(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockPacketSource(ctrl)

	gomock.InOrder(
		src.EXPECT().Next(gomock.Any()).Return(netmon.Packet{EtherType: netmon.EtherTypeIPv4, IPProto: netmon.ProtoTCP}, nil),
		src.EXPECT().Next(gomock.Any()).Return(netmon.Packet{EtherType: 0x88CC}, nil),
		src.EXPECT().Next(gomock.Any()).Return(netmon.Packet{EtherType: netmon.EtherTypeARP}, nil),
		src.EXPECT().Next(gomock.Any()).Return(netmon.Packet{}, io.EOF),
	)
	src.EXPECT().Close().Return(nil)

	var got []bridge.Category
	m := netmon.NewMonitor(src)
	err := m.Run(context.Background(), func(c bridge.Category) bool {
		got = append(got, c)
		return c == bridge.TCP
	})

	require.NoError(t, err)
	assert.Equal(t, []bridge.Category{bridge.TCP, bridge.ARP}, got)
	seen, unclassified, published := m.Counts()
	assert.Equal(t, uint64(3), seen)
	assert.Equal(t, uint64(1), unclassified)
	assert.Equal(t, uint64(1), published)
}

func TestMonitorSourceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockPacketSource(ctrl)
	boom := errors.New("interface down")

	src.EXPECT().Next(gomock.Any()).Return(netmon.Packet{}, boom)
	src.EXPECT().Close().Return(nil)

	err := netmon.NewMonitor(src).Run(context.Background(), func(bridge.Category) bool { return true })
	require.ErrorIs(t, err, boom)
}

func TestMonitorThroughBridge(t *testing.T) {
	b := bridge.New(bridge.WithCooldown(0))
	src := netmon.NewSyntheticSource(42, time.Millisecond)
	require.NoError(t, b.Start(context.Background(), netmon.NewMonitor(src)))

	require.Eventually(t, func() bool {
		return b.Stats().TotalAccepted() > 0
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, b.Stop(time.Second))
	assert.NoError(t, b.Err())
	assert.NotEmpty(t, b.Drain())
}

type sliceSource struct {
	packets []netmon.Packet
}

func (s *sliceSource) Next(context.Context) (netmon.Packet, error) {
	if len(s.packets) == 0 {
		return netmon.Packet{}, io.EOF
	}
	p := s.packets[0]
	s.packets = s.packets[1:]
	return p, nil
}

func (s *sliceSource) Close() error { return nil }

func TestWebSocketFeed(t *testing.T) {
	srv := httptest.NewServer(&netmon.FeedHandler{NewSource: func() netmon.PacketSource {
		return &sliceSource{packets: []netmon.Packet{
			{EtherType: netmon.EtherTypeIPv4, IPProto: netmon.ProtoUDP},
			{EtherType: netmon.EtherTypeARP},
		}}
	}})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := netmon.DialWebSocket(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)

	var got []bridge.Category
	err = netmon.NewMonitor(src).Run(ctx, func(c bridge.Category) bool {
		got = append(got, c)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []bridge.Category{bridge.UDP, bridge.ARP}, got)
}
