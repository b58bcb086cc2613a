package ssdp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/upnpcore/ssdp/iface"
	"github.com/upnpcore/ssdp/ssdperr"
	"github.com/upnpcore/ssdp/useragent"
)

// ProductVersion aliases the useragent package's (name, version) pair so
// callers building Options don't need to import useragent directly.
type ProductVersion = useragent.ProductVersion

// ProductVersions is the ordered (platform, upnp, product) triple carried
// by the SERVER/USER-AGENT headers.
type ProductVersions = useragent.ProductVersions

// ControlPoint identifies the UPnP client issuing a UDA 2.0 search: a
// friendly-name, optional UUID, and optional TCP port.
type ControlPoint struct {
	FriendlyName string
	UUID         *string
	Port         *uint16
}

// MulticastScope selects which IPv6 SSDP group spec.md §6.1 an operation
// joins; it has no effect when IPVersion is V4.
type MulticastScope int

const (
	// LinkLocalScope is the default discovery scope (FF02::C), matching the
	// LAN-only reach of the mandatory IPv4 group.
	LinkLocalScope MulticastScope = iota
	// SiteLocalScope (FF05::C) reaches beyond the local link to the rest of
	// the site, per spec.md §6.1.
	SiteLocalScope
)

// Options configures a search_once call. Zero value is not valid; use
// DefaultOptions and override fields.
type Options struct {
	SpecVersion       SpecVersion
	SearchTarget      SearchTarget
	Interface         string
	IPVersion         iface.IPVersion
	MulticastScope    MulticastScope // IPv6 only; LinkLocalScope by default
	PacketTTL         int            // 0 means derive from SpecVersion: 4 for V10, 2 otherwise
	MaxWaitTime       int            // seconds, domain 1..120
	ProductAndVersion *ProductVersion
	ControlPoint      *ControlPoint
	LocalNetworkOnly  bool
	LoopBackAlso      bool
}

// DefaultOptions returns the defaults spec.md §4.7 names: V1.0, RootDevice,
// wildcard interface/IP version, MaxWaitTime 2.
func DefaultOptions() Options {
	return Options{
		SpecVersion:  V10,
		SearchTarget: RootDevice(),
		MaxWaitTime:  2,
	}
}

func (o Options) packetTTL() int {
	if o.PacketTTL != 0 {
		return o.PacketTTL
	}
	if o.SpecVersion == V10 {
		return 4
	}
	return 2
}

var numericVersionRE = regexp.MustCompile(`^[\d.]+$`)

// validate implements spec.md §4.7's validate() rules.
func (o Options) validate() error {
	if o.MaxWaitTime < 1 || o.MaxWaitTime > 120 {
		return ssdperr.ErrInvalidValue(ssdperr.SourceField, "max_wait_time", fmt.Sprintf("%d", o.MaxWaitTime))
	}

	if o.SpecVersion.AtLeast(V11) && o.ProductAndVersion != nil {
		if strings.Contains(o.ProductAndVersion.Name, "/") {
			return ssdperr.ErrInvalidValue(ssdperr.SourceField, "product_and_version.name", o.ProductAndVersion.Name)
		}
		if !numericVersionRE.MatchString(o.ProductAndVersion.Version) {
			return ssdperr.ErrInvalidValue(ssdperr.SourceField, "product_and_version.version", o.ProductAndVersion.Version)
		}
	}

	if o.SpecVersion.AtLeast(V20) {
		if o.ControlPoint == nil {
			return ssdperr.ErrMissingRequiredValue(ssdperr.SourceField, "ControlPoint")
		}
		if strings.TrimSpace(o.ControlPoint.FriendlyName) == "" {
			return ssdperr.ErrMissingRequiredValue(ssdperr.SourceField, "ControlPoint.FriendlyName")
		}
	}

	return nil
}
