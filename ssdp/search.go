package ssdp

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/upnpcore/ssdp/httpu"
	"github.com/upnpcore/ssdp/iface"
	"github.com/upnpcore/ssdp/ssdperr"
	"github.com/upnpcore/ssdp/useragent"
)

// MulticastAddress is the mandatory IPv4 SSDP multicast endpoint.
const MulticastAddress = "239.255.255.250:1900"

// MulticastAddressV6LinkLocal and MulticastAddressV6SiteLocal are the IPv6
// SSDP multicast endpoints named in spec.md §6.1.
const (
	MulticastAddressV6LinkLocal = "[FF02::C]:1900"
	MulticastAddressV6SiteLocal = "[FF05::C]:1900"
)

var defaultProduct = useragent.ProductVersion{Name: "ssdp-go", Version: "1.0"}

// multicastAddressFor selects the SSDP multicast group for the requested
// address family and, for IPv6, the requested scope (spec.md §6.1): the
// mandatory IPv4 group, or the IPv6 link-local/site-local group.
func multicastAddressFor(version iface.IPVersion, scope MulticastScope) string {
	if version != iface.V6 {
		return MulticastAddress
	}
	if scope == SiteLocalScope {
		return MulticastAddressV6SiteLocal
	}
	return MulticastAddressV6LinkLocal
}

func resolveMulticastAddr(version iface.IPVersion, scope MulticastScope) (*net.UDPAddr, error) {
	addr := multicastAddressFor(version, scope)
	network := "udp4"
	if version == iface.V6 {
		network = "udp6"
	}
	toAddr, err := net.ResolveUDPAddr(network, addr)
	if err != nil {
		return nil, ssdperr.NetworkTransport(err)
	}
	return toAddr, nil
}

func buildSearchRequest(opts Options, probe useragent.PlatformProbe) *httpu.Request {
	req := httpu.NewRequest("M-SEARCH")
	req.Set("HOST", multicastAddressFor(opts.IPVersion, opts.MulticastScope))
	req.Set("MAN", `"ssdp:discover"`)
	req.Set("MX", strconv.Itoa(opts.MaxWaitTime))
	req.Set("ST", opts.SearchTarget.Render())

	if opts.SpecVersion.AtLeast(V11) {
		var product useragent.ProductVersion
		if opts.ProductAndVersion != nil {
			product = *opts.ProductAndVersion
		}
		req.Set("USER-AGENT", useragent.String(probe, opts.SpecVersion.String(), product, defaultProduct))
	}

	if opts.SpecVersion.AtLeast(V20) && opts.ControlPoint != nil {
		req.Set("CPFN.UPNP.ORG", opts.ControlPoint.FriendlyName)
		if opts.ControlPoint.UUID != nil {
			req.Set("CPUUID.UPNP.ORG", *opts.ControlPoint.UUID)
		}
		if opts.ControlPoint.Port != nil {
			req.Set("TCPPORT.UPNP.ORG", strconv.Itoa(int(*opts.ControlPoint.Port)))
		}
	}

	return req
}

func transportOptions(opts Options, recvTimeoutSeconds int) httpu.Options {
	return httpu.Options{
		Interface:        opts.Interface,
		IPVersion:        opts.IPVersion,
		RecvTimeout:      time.Duration(recvTimeoutSeconds) * time.Second,
		PacketTTL:        opts.packetTTL(),
		LocalNetworkOnly: opts.LocalNetworkOnly,
		LoopBackAlso:     opts.LoopBackAlso,
	}
}

// SearchOnce performs one multicast M-SEARCH cycle per spec.md §4.7:
// validate, build the request, multicast it, convert each raw response,
// and return the accumulated SearchResponse values.
func SearchOnce(ctx context.Context, opts Options) ([]*SearchResponse, error) {
	return searchOnceWithProbe(ctx, opts, useragent.DefaultPlatformProbe)
}

// searchOnceFn is the Response Cache's search seam: production code always
// routes through SearchOnce, but tests substitute a fake to drive cache
// seeding/merge logic without a real multicast socket.
var searchOnceFn = SearchOnce

func searchOnceWithProbe(ctx context.Context, opts Options, probe useragent.PlatformProbe) ([]*SearchResponse, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := buildSearchRequest(opts, probe)

	toAddr, err := resolveMulticastAddr(opts.IPVersion, opts.MulticastScope)
	if err != nil {
		return nil, err
	}

	raw, err := httpu.Multicast(ctx, req, toAddr, transportOptions(opts, opts.MaxWaitTime))
	if err != nil {
		return nil, err
	}

	var results []*SearchResponse
	for _, r := range raw {
		sr, err := toSearchResponse(r)
		if err != nil {
			continue
		}
		results = append(results, sr)
	}
	return results, nil
}

// SearchOnceToDevice is the unicast variant required for UDA 1.1+: it sends
// directly to deviceAddr rather than the multicast group (spec.md Open
// Question #5 mandates unicast-to-device over the source revision that
// multicasts). It is gated to V11+ and omits MX per UDA unicast rules.
func SearchOnceToDevice(ctx context.Context, opts Options, deviceAddr string) ([]*SearchResponse, error) {
	if !opts.SpecVersion.AtLeast(V11) {
		return nil, ssdperr.UnsupportedVersion(opts.SpecVersion.String())
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	network := "udp4"
	if opts.IPVersion == iface.V6 {
		network = "udp6"
	}
	toAddr, err := net.ResolveUDPAddr(network, deviceAddr)
	if err != nil {
		return nil, ssdperr.NetworkTransport(err)
	}

	req := httpu.NewRequest("M-SEARCH")
	req.Set("HOST", deviceAddr)
	req.Set("MAN", `"ssdp:discover"`)
	req.Set("ST", opts.SearchTarget.Render())
	var product useragent.ProductVersion
	if opts.ProductAndVersion != nil {
		product = *opts.ProductAndVersion
	}
	req.Set("USER-AGENT", useragent.String(useragent.DefaultPlatformProbe, opts.SpecVersion.String(), product, defaultProduct))

	raw, err := httpu.Multicast(ctx, req, toAddr, transportOptions(opts, opts.MaxWaitTime))
	if err != nil {
		return nil, err
	}

	var results []*SearchResponse
	for _, r := range raw {
		sr, err := toSearchResponse(r)
		if err != nil {
			continue
		}
		results = append(results, sr)
	}
	return results, nil
}
