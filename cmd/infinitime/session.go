package main

import (
	"context"

	"github.com/bdube/infinitime/dfu"
	"github.com/bdube/infinitime/watch"
)

// connect loads the watch config and dials the device, applying any
// command-line override of the configured device name.
func connect(ctx context.Context) (*dfu.Session, error) {
	cfg, err := watch.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if deviceName != "" {
		cfg.DeviceName = deviceName
	}
	return watch.Dial(ctx, cfg, log)
}
