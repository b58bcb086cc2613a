package ssdp

import "github.com/google/uuid"

// NewUUID generates a fresh random UUID for a Device's uuid: SearchTarget,
// its ServiceName (USN), or a ControlPoint's CPUUID.UPNP.ORG value.
func NewUUID() string {
	return uuid.New().String()
}

// NewUSN composes the canonical USN value "uuid:{deviceUUID}::{target}" for
// any target other than the bare device-uuid target itself, matching the
// teacher's getUSN in server/dlna/ssdp.go.
func NewUSN(deviceUUID string, target SearchTarget) string {
	if target.Kind == TargetDevice && target.UUID == deviceUUID {
		return "uuid:" + deviceUUID
	}
	return "uuid:" + deviceUUID + "::" + target.Render()
}
