/*Package watch connects to an InfiniTime-firmware smartwatch over BLE and
wires the transfer and version GATT characteristics into a dfu.Session.

It is pure glue: scanning, connecting, service/characteristic discovery and
notification subscription all come from github.com/go-ble/ble, the BLE
library this corpus's BLE-touching code (srgg-blecli's ble_connection.go)
uses. No protocol design lives here; that is dfu's job.
*/
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/sirupsen/logrus"

	"github.com/bdube/infinitime/dfu"
)

// Characteristic UUIDs, fixed by the protocol.
const (
	versionUUID  = "adaf0100-4669-6c65-5472-616e73666572"
	transferUUID = "adaf0200-4669-6c65-5472-616e73666572"
)

// ErrCharacteristicMissing is returned by Dial when the version or transfer
// characteristic cannot be found on the connected peripheral. It is fatal:
// the watch does not speak this protocol, or the firmware exposes a
// different profile than expected.
type ErrCharacteristicMissing struct {
	UUID string
	Name string
}

func (e *ErrCharacteristicMissing) Error() string {
	return fmt.Sprintf("watch: %s characteristic (%s) not found during discovery", e.Name, e.UUID)
}

// deviceFactory creates the platform ble.Device. Overridable in tests.
var deviceFactory = func() (ble.Device, error) {
	return linux.NewDevice()
}

// Dial scans for a peripheral advertising the given local name, connects to
// it, discovers its services, resolves the version and transfer
// characteristics by UUID, subscribes to notifications on the transfer
// characteristic, and returns a ready dfu.Session.
//
// Dial blocks until connected or cfg.ScanTimeout/cfg.ConnectTimeout elapses.
// No explicit teardown command is sent to the watch when the session is
// later dropped; ble.Client.CancelConnection() simply ends the link.
func Dial(ctx context.Context, cfg Config, log *logrus.Logger) (*dfu.Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	dev, err := deviceFactory()
	if err != nil {
		return nil, fmt.Errorf("watch: creating BLE device: %w", err)
	}
	ble.SetDefaultDevice(dev)

	scanCtx, cancelScan := context.WithTimeout(ctx, cfg.ScanTimeout)
	defer cancelScan()

	name := cfg.DeviceName
	filter := func(a ble.Advertisement) bool {
		return strings.EqualFold(a.LocalName(), name)
	}

	log.WithField("device_name", name).Info("watch: scanning for peripheral")
	client, err := backingOffScan(scanCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("watch: scanning for %q: %w", name, err)
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancelConnect()

	profile, err := discoverProfile(connectCtx, client)
	if err != nil {
		client.CancelConnection()
		return nil, fmt.Errorf("watch: discovering profile: %w", err)
	}

	versionChar := findCharacteristic(profile, versionUUID)
	if versionChar == nil {
		client.CancelConnection()
		return nil, &ErrCharacteristicMissing{UUID: versionUUID, Name: "version"}
	}
	transferChar := findCharacteristic(profile, transferUUID)
	if transferChar == nil {
		client.CancelConnection()
		return nil, &ErrCharacteristicMissing{UUID: transferUUID, Name: "transfer"}
	}

	t := newTransport(client, versionChar, transferChar, cfg.NotificationBuffer)
	if err := client.Subscribe(transferChar, false, t.onNotification); err != nil {
		client.CancelConnection()
		return nil, fmt.Errorf("watch: subscribing to transfer characteristic: %w", err)
	}

	log.Info("watch: connected and subscribed")
	return dfu.NewSession(t, dfu.WithLogger(log)), nil
}

// discoverProfile runs client.DiscoverProfile, which takes no context of
// its own, on a goroutine and gives up waiting for it once ctx is done.
// The goroutine itself is not killed by ctx expiring (DiscoverProfile has
// no way to be cancelled); it is left to finish and its result discarded.
func discoverProfile(ctx context.Context, client ble.Client) (*ble.Profile, error) {
	type result struct {
		profile *ble.Profile
		err     error
	}
	done := make(chan result, 1)
	go func() {
		profile, err := client.DiscoverProfile(true)
		done <- result{profile, err}
	}()

	select {
	case r := <-done:
		return r.profile, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func findCharacteristic(profile *ble.Profile, uuid string) *ble.Characteristic {
	want := ble.MustParse(uuid)
	for _, svc := range profile.Services {
		for _, c := range svc.Characteristics {
			if c.UUID.Equal(want) {
				return c
			}
		}
	}
	return nil
}

// Config holds the parameters used to locate and connect to the watch.
type Config struct {
	// DeviceName is the advertised local name scanned for.
	DeviceName string `koanf:"device_name"`

	// ScanTimeout bounds how long Dial waits for an advertisement to match.
	ScanTimeout time.Duration `koanf:"scan_timeout"`

	// ConnectTimeout bounds how long Dial waits for GATT discovery to
	// complete once a peripheral has been found.
	ConnectTimeout time.Duration `koanf:"connect_timeout"`

	// NotificationBuffer sizes the channel backing the transfer
	// characteristic's notification stream.
	NotificationBuffer int `koanf:"notification_buffer"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		DeviceName:         "InfiniTime",
		ScanTimeout:        10 * time.Second,
		ConnectTimeout:     5 * time.Second,
		NotificationBuffer: 16,
	}
}
