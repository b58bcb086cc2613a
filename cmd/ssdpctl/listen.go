package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/upnpcore/ssdp/ssdp"
)

// newListenCmd implements spec.md §6.2's "listen" subcommand. The spec
// calls it a no-op placeholder in the source; since the Notify Engine here
// is fully implemented, listen advertises a single root-device Device
// until interrupted, rather than reproducing that stub.
func newListenCmd() *cobra.Command {
	var (
		location        string
		specVersionFlag string
		interfaceFlag   string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Advertise a device via NOTIFY until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			specVersion, err := ssdp.ParseSpecVersion(specVersionFlag)
			if err != nil {
				return err
			}

			deviceUUID := ssdp.NewUUID()
			device := ssdp.NewDevice(ssdp.RootDevice(), ssdp.NewUSN(deviceUUID, ssdp.RootDevice()), location)

			notifyOpts := ssdp.NotifyOptions{
				SpecVersion: specVersion,
				Interface:   interfaceFlag,
			}

			if err := device.Announce(notifyOpts); err != nil {
				return err
			}
			fmt.Printf("advertising %s, boot_id=%d, press Ctrl-C to stop\n", device.ServiceName, device.BootID)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			return device.Unannounce(notifyOpts)
		},
	}

	cmd.Flags().StringVar(&location, "location", "http://127.0.0.1:8080/device.xml", "device description URL to advertise")
	cmd.Flags().StringVar(&specVersionFlag, "spec-version", "1.0", "1.0|1.1|2.0")
	cmd.Flags().StringVar(&interfaceFlag, "interface", "", "bind to this network interface")

	return cmd
}
