package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/upnpcore/ssdp/iface"
	"github.com/upnpcore/ssdp/ssdp"
)

func newSearchCmd() *cobra.Command {
	var (
		searchTargetFlag string
		domainFlag       string
		maxWait          int
		interfaceFlag    string
		useIPv6          bool
		ipv6SiteLocal    bool
		specVersionFlag  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Send an M-SEARCH and print the responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseSearchTargetFlag(searchTargetFlag, domainFlag)
			if err != nil {
				return err
			}

			specVersion, err := ssdp.ParseSpecVersion(specVersionFlag)
			if err != nil {
				return err
			}

			opts := ssdp.DefaultOptions()
			opts.SpecVersion = specVersion
			opts.SearchTarget = target
			opts.MaxWaitTime = maxWait
			opts.Interface = interfaceFlag
			if useIPv6 {
				opts.IPVersion = iface.V6
			}
			if ipv6SiteLocal {
				opts.MulticastScope = ssdp.SiteLocalScope
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(maxWait+1)*time.Second)
			defer cancel()

			responses, err := ssdp.SearchOnce(ctx, opts)
			if err != nil {
				return err
			}

			for _, r := range responses {
				fmt.Printf("%s\tlocation=%s\tmax-age=%s\n", r.ServiceName, r.Location, r.MaxAge)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&searchTargetFlag, "search-target", "root", "all|root|device:{id}|device-type:{id}|service-type:{id}")
	cmd.Flags().StringVar(&domainFlag, "domain", "", "domain for domain-qualified search targets")
	cmd.Flags().IntVar(&maxWait, "max-wait", 2, "MX seconds, 1..120")
	cmd.Flags().StringVar(&interfaceFlag, "interface", "", "bind to this network interface")
	cmd.Flags().BoolVar(&useIPv6, "use-ipv6", false, "search over IPv6 instead of IPv4")
	cmd.Flags().BoolVar(&ipv6SiteLocal, "ipv6-site-local", false, "use the site-local IPv6 group (FF05::C) instead of link-local")
	cmd.Flags().StringVar(&specVersionFlag, "spec-version", "1.0", "1.0|1.1|2.0")

	return cmd
}

func parseSearchTargetFlag(value, domain string) (ssdp.SearchTarget, error) {
	switch {
	case value == "all":
		return ssdp.All(), nil
	case value == "root":
		return ssdp.RootDevice(), nil
	case strings.HasPrefix(value, "device:"):
		return ssdp.Device(strings.TrimPrefix(value, "device:")), nil
	case strings.HasPrefix(value, "device-type:"):
		nv := strings.TrimPrefix(value, "device-type:")
		if domain != "" {
			return ssdp.DomainDeviceType(domain, nv), nil
		}
		return ssdp.DeviceType(nv), nil
	case strings.HasPrefix(value, "service-type:"):
		nv := strings.TrimPrefix(value, "service-type:")
		if domain != "" {
			return ssdp.DomainServiceType(domain, nv), nil
		}
		return ssdp.ServiceType(nv), nil
	default:
		return ssdp.SearchTarget{}, fmt.Errorf("unrecognized --search-target %q", value)
	}
}
