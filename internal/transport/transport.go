// internal/transport/transport.go
package transport

import "context"

// Transport is the byte channel to the printer. The printer is treated as
// write-only at this layer: there is no read-back or ack protocol, and
// retry policy (such as reopening a dropped port) belongs to the
// implementation behind this interface.
type Transport interface {
	// Open opens the underlying channel
	Open(ctx context.Context) error

	// Write sends data to the printer
	Write(ctx context.Context, data []byte) error

	// Close closes the underlying channel
	Close() error

	// IsOpen returns whether the channel is open
	IsOpen() bool
}
