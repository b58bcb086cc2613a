package ssdp

import (
	"strconv"

	"github.com/upnpcore/ssdp/httpu"
	"github.com/upnpcore/ssdp/iface"
	"github.com/upnpcore/ssdp/ssdperr"
	"github.com/upnpcore/ssdp/useragent"
)

// DefaultMaxAge is the CACHE-CONTROL max-age NOTIFY alive/update messages
// advertise when NotifyOptions.MaxAge is left at zero, matching the
// teacher's cacheMaxAge constant (1800 seconds / 30 minutes).
const DefaultMaxAge = 1800

// NotifyOptions configures device_available / device_update /
// device_unavailable per spec.md §4.9.
type NotifyOptions struct {
	SpecVersion       SpecVersion
	Interface         string
	IPVersion         iface.IPVersion
	MulticastScope    MulticastScope // IPv6 only; LinkLocalScope by default
	MaxAge            int            // seconds; 0 means DefaultMaxAge
	ProductAndVersion *useragent.ProductVersion
}

func (o NotifyOptions) maxAge() int {
	if o.MaxAge != 0 {
		return o.MaxAge
	}
	return DefaultMaxAge
}

func (o NotifyOptions) serverString() string {
	var product useragent.ProductVersion
	if o.ProductAndVersion != nil {
		product = *o.ProductAndVersion
	}
	return useragent.String(useragent.DefaultPlatformProbe, o.SpecVersion.String(), product, defaultProduct)
}

// notifySend is the Notify Engine's send seam: production code always
// routes through sendNotify, but tests substitute a fake to drive the
// BootID/state-machine logic without a real multicast socket.
var notifySend = sendNotify

func sendNotify(req *httpu.Request, opts NotifyOptions) error {
	toAddr, err := resolveMulticastAddr(opts.IPVersion, opts.MulticastScope)
	if err != nil {
		return err
	}

	transportOpts := httpu.Options{
		Interface: opts.Interface,
		IPVersion: opts.IPVersion,
		PacketTTL: 4,
	}

	return httpu.MulticastOnce(req, toAddr, transportOpts)
}

// deviceAvailable builds and sends the ssdp:alive NOTIFY of spec.md §4.9,
// advancing BootID by exactly 1 once the datagram is accepted.
func deviceAvailable(d *AnnouncedDevice, opts NotifyOptions) error {
	req := httpu.NewRequest("NOTIFY")
	req.Set("HOST", multicastAddressFor(opts.IPVersion, opts.MulticastScope))
	req.Set("CACHE-CONTROL", "max-age="+strconv.Itoa(opts.maxAge()))
	req.Set("LOCATION", d.Location)
	req.Set("NT", d.NotificationType.Render())
	req.Set("NTS", "ssdp:alive")
	req.Set("SERVER", opts.serverString())
	req.Set("USN", d.ServiceName)

	if opts.SpecVersion.AtLeast(V11) {
		req.Set("BOOTID.UPNP.ORG", strconv.FormatUint(uint64(d.BootID), 10))
		req.Set("CONFIGID.UPNP.ORG", strconv.FormatUint(d.ConfigID, 10))
		if d.SearchPort != nil {
			req.Set("SEARCHPORT.UPNP.ORG", strconv.Itoa(int(*d.SearchPort)))
		}
	}
	if opts.SpecVersion == V20 && d.SecureLocation != nil {
		req.Set("SECURELOCATION.UPNP.ORG", *d.SecureLocation)
	}

	if err := notifySend(req, opts); err != nil {
		return err
	}
	d.BootID++
	return nil
}

// deviceUpdate builds and sends the ssdp:update NOTIFY. V1.0 does not
// support update.
func deviceUpdate(d *AnnouncedDevice, opts NotifyOptions) error {
	if !opts.SpecVersion.AtLeast(V11) {
		return ssdperr.UnsupportedVersion(opts.SpecVersion.String())
	}

	req := httpu.NewRequest("NOTIFY")
	req.Set("HOST", multicastAddressFor(opts.IPVersion, opts.MulticastScope))
	req.Set("LOCATION", d.Location)
	req.Set("NT", d.NotificationType.Render())
	req.Set("NTS", "ssdp:update")
	req.Set("USN", d.ServiceName)
	req.Set("BOOTID.UPNP.ORG", strconv.FormatUint(uint64(d.BootID), 10))
	req.Set("NEXTBOOTID.UPNP.ORG", strconv.FormatUint(uint64(d.BootID)+1, 10))
	req.Set("CONFIGID.UPNP.ORG", strconv.FormatUint(d.ConfigID, 10))
	if d.SearchPort != nil {
		req.Set("SEARCHPORT.UPNP.ORG", strconv.Itoa(int(*d.SearchPort)))
	}
	if opts.SpecVersion == V20 && d.SecureLocation != nil {
		req.Set("SECURELOCATION.UPNP.ORG", *d.SecureLocation)
	}

	if err := notifySend(req, opts); err != nil {
		return err
	}
	d.BootID++
	return nil
}

// deviceUnavailable builds and sends the ssdp:byebye NOTIFY.
func deviceUnavailable(d *AnnouncedDevice, opts NotifyOptions) error {
	req := httpu.NewRequest("NOTIFY")
	req.Set("HOST", multicastAddressFor(opts.IPVersion, opts.MulticastScope))
	req.Set("NT", d.NotificationType.Render())
	req.Set("NTS", "ssdp:byebye")
	req.Set("USN", d.ServiceName)

	if opts.SpecVersion.AtLeast(V11) {
		req.Set("BOOTID.UPNP.ORG", strconv.FormatUint(uint64(d.BootID), 10))
		req.Set("CONFIGID.UPNP.ORG", strconv.FormatUint(d.ConfigID, 10))
	}

	if err := notifySend(req, opts); err != nil {
		return err
	}
	d.BootID++
	return nil
}
