// Command infinitime is a CLI client for an InfiniTime-firmware
// smartwatch's BLE file-transfer protocol: it connects, then runs a single
// filesystem operation against the watch and exits.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version is injected via ldflags at build time.
	Version = "dev"

	configPath string
	deviceName string
	verbose    bool
	log        = logrus.StandardLogger()
)

func main() {
	root := &cobra.Command{
		Use:           "infinitime",
		Short:         "Talk to an InfiniTime smartwatch's file-transfer service over BLE",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "watch.yml", "path to the watch connection config")
	root.PersistentFlags().StringVar(&deviceName, "device", "", "override the configured device name")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	})

	root.AddCommand(
		newVersionCmd(),
		newLsCmd(),
		newGetCmd(),
		newPutCmd(),
		newRmCmd(),
		newMkdirCmd(),
		newMvCmd(),
		newPushCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
