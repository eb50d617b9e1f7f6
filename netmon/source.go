package netmon

import "context"

//go:generate go tool mockgen -destination=./mocks/source_mock.go -package=mocks . PacketSource

// PacketSource yields observed packets. Next blocks until a packet is
// available or ctx is done, and returns io.EOF once the source is exhausted.
type PacketSource interface {
	Next(ctx context.Context) (Packet, error)
	Close() error
}
