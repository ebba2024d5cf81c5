package dfu

import "context"

// Transport is the narrow interface a Session needs from a connected BLE
// peripheral. It is implemented by the watch package against a live
// github.com/go-ble/ble connection, and by a scripted fake in this
// package's tests.
//
// Discovering services, finding characteristics by UUID, and subscribing
// for notifications are the caller's responsibility; by the time a
// Transport reaches a Session those things have already happened.
type Transport interface {
	// ReadVersion reads the version characteristic and returns its raw
	// value.
	ReadVersion(ctx context.Context) ([]byte, error)

	// WriteTransfer writes b to the transfer characteristic as an
	// unacknowledged write (without response).
	WriteTransfer(ctx context.Context, b []byte) error

	// NextNotification blocks until the next notification on the transfer
	// characteristic is available and returns its full frame payload.
	// Notifications are delivered in the order the peripheral emitted
	// them; taking one is a mutation of the underlying stream, so a
	// Transport must be used by at most one Session at a time.
	NextNotification(ctx context.Context) ([]byte, error)
}
