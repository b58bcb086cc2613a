package ssdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnpcore/ssdp/httpu"
)

// withFakeNotifySend substitutes the Notify Engine's send seam for the
// duration of a test, restoring it on cleanup.
func withFakeNotifySend(t *testing.T, fn func(req *httpu.Request, opts NotifyOptions) error) {
	t.Helper()
	prev := notifySend
	notifySend = fn
	t.Cleanup(func() { notifySend = prev })
}

// TestBootIDMonotonicity covers BootID monotonicity (spec.md Testable
// Property 6) across successful sends: one device_available followed by
// four device_update calls advances BootID from 0 to 5.
func TestBootIDMonotonicity(t *testing.T) {
	withFakeNotifySend(t, func(req *httpu.Request, opts NotifyOptions) error { return nil })

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	opts := NotifyOptions{SpecVersion: V11}

	require.NoError(t, d.Announce(opts))
	assert.Equal(t, uint32(1), d.BootID)

	for i := 0; i < 4; i++ {
		require.NoError(t, d.Update(opts))
	}
	assert.Equal(t, uint32(5), d.BootID)
}

// TestBootIDHoldsOnFailedSend covers the converse of Property 6: a failed
// send must not advance BootID or change device state.
func TestBootIDHoldsOnFailedSend(t *testing.T) {
	withFakeNotifySend(t, func(req *httpu.Request, opts NotifyOptions) error {
		return assert.AnError
	})

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	opts := NotifyOptions{SpecVersion: V11}

	err := d.Announce(opts)
	require.Error(t, err)
	assert.Equal(t, uint32(0), d.BootID)
	assert.Equal(t, NotAnnounced, d.State())
}

// TestDeviceStateMachineGating exercises Announce/Update/Unannounce
// transition gating per spec.md §4.9's device lifecycle state machine.
func TestDeviceStateMachineGating(t *testing.T) {
	withFakeNotifySend(t, func(req *httpu.Request, opts NotifyOptions) error { return nil })

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	assert.Equal(t, NotAnnounced, d.State())

	opts := NotifyOptions{SpecVersion: V11}

	// Update and Unannounce are not valid from NotAnnounced.
	assert.Error(t, d.Update(opts))
	assert.Error(t, d.Unannounce(opts))
	assert.Equal(t, NotAnnounced, d.State())

	require.NoError(t, d.Announce(opts))
	assert.Equal(t, Alive, d.State())

	require.NoError(t, d.Unannounce(opts))
	assert.Equal(t, Departed, d.State())

	// Departed is terminal: nothing transitions out of it.
	assert.Error(t, d.Announce(opts))
	assert.Error(t, d.Update(opts))
	assert.Error(t, d.Unannounce(opts))
}

func TestDeviceUSNForRootDevice(t *testing.T) {
	uuid := "1234"
	assert.Equal(t, "uuid:1234::upnp:rootdevice", NewUSN(uuid, RootDevice()))
	assert.Equal(t, "uuid:1234", NewUSN(uuid, Device(uuid)))
}

func TestDeviceTransitionTable(t *testing.T) {
	d := NewDevice(RootDevice(), "usn", "loc")
	require.True(t, d.transition(NotAnnounced))
	d.state = Alive
	require.True(t, d.transition(Alive))
	require.False(t, d.transition(NotAnnounced))
	d.state = Departed
	require.False(t, d.transition(Alive, NotAnnounced))
}
