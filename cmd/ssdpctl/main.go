// Command ssdpctl is the CLI collaborator spec.md §6.2 describes: it is not
// part of the core, only a thin cobra front-end over the ssdp package's
// public API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/upnpcore/ssdp/ssdplog"
)

var verbosity int

func main() {
	root := &cobra.Command{
		Use:   "ssdpctl",
		Short: "Discover and advertise UPnP devices over SSDP",
	}

	root.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 3, "log verbosity 0..5 (Off/Error/Warn/Info/Debug/Trace)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		ssdplog.SetLevel(verbosity)
	}

	root.AddCommand(newSearchCmd())
	root.AddCommand(newListenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
