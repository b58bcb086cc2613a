package ssdp

import (
	"sync"

	"github.com/upnpcore/ssdp/ssdperr"
)

// DeviceState is the Notify Engine's lifecycle state for a Device:
// NotAnnounced -> Alive (repeatable) -> Departed (terminal).
type DeviceState int

const (
	NotAnnounced DeviceState = iota
	Alive
	Departed
)

func (s DeviceState) String() string {
	switch s {
	case NotAnnounced:
		return "NotAnnounced"
	case Alive:
		return "Alive"
	case Departed:
		return "Departed"
	default:
		return "unknown"
	}
}

// AnnouncedDevice is the notification subject advertised by device_available /
// device_update / device_unavailable. BootID is advanced by exactly 1 on
// every successful send, guarded by mu since the Notify Engine is expected
// to run from a long-lived announce loop (grounded on the teacher's
// server/dlna/dlna.go Router, which guards its own lifecycle the same way).
type AnnouncedDevice struct {
	mu sync.Mutex

	NotificationType SearchTarget
	ServiceName      string
	Location         string
	BootID           uint32
	ConfigID         uint64
	SearchPort       *uint16
	SecureLocation   *string

	state DeviceState
}

// NewDevice constructs an AnnouncedDevice in the NotAnnounced state.
func NewDevice(notificationType SearchTarget, serviceName, location string) *AnnouncedDevice {
	return &AnnouncedDevice{
		NotificationType: notificationType,
		ServiceName:      serviceName,
		Location:         location,
		state:            NotAnnounced,
	}
}

// State reports the device's current lifecycle state.
func (d *AnnouncedDevice) State() DeviceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *AnnouncedDevice) transition(allowed ...DeviceState) (ok bool) {
	for _, s := range allowed {
		if d.state == s {
			return true
		}
	}
	return false
}

// Announce sends device_available and, on success, transitions
// NotAnnounced/Alive -> Alive.
func (d *AnnouncedDevice) Announce(opts NotifyOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.transition(NotAnnounced, Alive) {
		return ssdperr.UnsupportedOperation("device_available")
	}

	if err := deviceAvailable(d, opts); err != nil {
		return err
	}
	d.state = Alive
	return nil
}

// Update sends device_update and, on success, keeps the device Alive.
func (d *AnnouncedDevice) Update(opts NotifyOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.transition(Alive) {
		return ssdperr.UnsupportedOperation("device_update")
	}

	if err := deviceUpdate(d, opts); err != nil {
		return err
	}
	d.state = Alive
	return nil
}

// Unannounce sends device_unavailable and, on success, transitions to the
// terminal Departed state.
func (d *AnnouncedDevice) Unannounce(opts NotifyOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.transition(Alive) {
		return ssdperr.UnsupportedOperation("device_unavailable")
	}

	if err := deviceUnavailable(d, opts); err != nil {
		return err
	}
	d.state = Departed
	return nil
}
