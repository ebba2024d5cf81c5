package watch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-ble/ble"
)

// backingOffScan retries filter-matching BLE scans with exponential backoff,
// the same shape comm.BackingOffTCPConnMaker used for flaky TCP links:
// InfiniTime only advertises intermittently, and a single failed scan
// attempt does not mean the watch is unreachable.
func backingOffScan(ctx context.Context, filter func(ble.Advertisement) bool) (ble.Client, error) {
	var client ble.Client

	op := func() error {
		c, err := ble.Connect(ctx, filter)
		if err != nil {
			return err
		}
		client = c
		return nil
	}

	b := backoff.WithContext(&backoff.ExponentialBackOff{
		InitialInterval:     250 * time.Millisecond,
		RandomizationFactor: 0.2,
		Multiplier:          2,
		MaxInterval:         5 * time.Second,
		MaxElapsedTime:      0, // ctx's own deadline bounds the loop instead
		Clock:               backoff.SystemClock,
	}, ctx)

	err := backoff.Retry(op, b)
	return client, err
}
