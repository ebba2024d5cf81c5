package watch

import (
	"context"

	"github.com/go-ble/ble"
)

// bleTransport adapts a connected ble.Client and its two characteristics to
// dfu.Transport. Notifications arrive on client's own goroutine (the one
// go-ble spins up to service GATT indications/notifications); onNotification
// forwards them into a buffered channel so NextNotification can block on
// ctx instead of on the BLE stack directly.
type bleTransport struct {
	client       ble.Client
	versionChar  *ble.Characteristic
	transferChar *ble.Characteristic
	notify       chan []byte
}

func newTransport(client ble.Client, versionChar, transferChar *ble.Characteristic, bufSize int) *bleTransport {
	if bufSize <= 0 {
		bufSize = 1
	}
	return &bleTransport{
		client:       client,
		versionChar:  versionChar,
		transferChar: transferChar,
		notify:       make(chan []byte, bufSize),
	}
}

func (t *bleTransport) onNotification(req []byte) {
	frame := append([]byte(nil), req...)
	t.notify <- frame
}

func (t *bleTransport) ReadVersion(ctx context.Context) ([]byte, error) {
	return t.client.ReadCharacteristic(t.versionChar)
}

func (t *bleTransport) WriteTransfer(ctx context.Context, frame []byte) error {
	const withoutResponse = true
	return t.client.WriteCharacteristic(t.transferChar, frame, withoutResponse)
}

func (t *bleTransport) NextNotification(ctx context.Context) ([]byte, error) {
	select {
	case n := <-t.notify:
		return n, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
