// Package netmon turns observed packets into classifier events for the
// bridge. Capturing the packets is left to a PacketSource.
package netmon

import "github.com/milk9111/striker/bridge"

// EtherType values the classifier understands.
const (
	EtherTypeIPv4 uint16 = 0x0800
	EtherTypeARP  uint16 = 0x0806
	EtherTypeIPv6 uint16 = 0x86DD
)

// IP protocol numbers the classifier understands.
const (
	ProtoICMP   uint8 = 1
	ProtoTCP    uint8 = 6
	ProtoUDP    uint8 = 17
	ProtoICMPv6 uint8 = 58
)

// Packet is the header summary of one observed frame.
type Packet struct {
	EtherType uint16 `json:"ether_type"`
	IPProto   uint8  `json:"ip_proto,omitempty"`
	Length    int    `json:"length,omitempty"`
}

// Classify maps a packet to a classifier tag. ok is false for traffic the
// game does not react to.
func Classify(p Packet) (bridge.Category, bool) {
	switch p.EtherType {
	case EtherTypeARP:
		return bridge.ARP, true
	case EtherTypeIPv4, EtherTypeIPv6:
		switch p.IPProto {
		case ProtoTCP:
			return bridge.TCP, true
		case ProtoUDP:
			return bridge.UDP, true
		case ProtoICMP, ProtoICMPv6:
			return bridge.ICMP, true
		}
	}
	return "", false
}
