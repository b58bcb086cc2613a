package ssdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnpcore/ssdp/httpu"
)

func TestDeviceAvailableSetsExpectedHeaders(t *testing.T) {
	var captured *httpu.Request
	prev := notifySend
	notifySend = func(req *httpu.Request, opts NotifyOptions) error {
		captured = req
		return nil
	}
	defer func() { notifySend = prev }()

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	require.NoError(t, d.Announce(NotifyOptions{SpecVersion: V11}))

	require.NotNil(t, captured)
	nts, ok := captured.Get("NTS")
	require.True(t, ok)
	assert.Equal(t, "ssdp:alive", nts)
	loc, ok := captured.Get("LOCATION")
	require.True(t, ok)
	assert.Equal(t, "http://10.0.0.1/desc.xml", loc)
	_, hasBootID := captured.Get("BOOTID.UPNP.ORG")
	assert.True(t, hasBootID, "V1.1 NOTIFY must carry BOOTID.UPNP.ORG")
}

func TestDeviceUpdateRejectedOnV10(t *testing.T) {
	prev := notifySend
	notifySend = func(req *httpu.Request, opts NotifyOptions) error { return nil }
	defer func() { notifySend = prev }()

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	require.NoError(t, d.Announce(NotifyOptions{SpecVersion: V10}))

	err := d.Update(NotifyOptions{SpecVersion: V10})
	assert.Error(t, err)
	// A rejected update must not advance BootID.
	assert.Equal(t, uint32(1), d.BootID)
}

func TestDeviceUpdateCarriesNextBootID(t *testing.T) {
	var captured *httpu.Request
	prev := notifySend
	notifySend = func(req *httpu.Request, opts NotifyOptions) error {
		captured = req
		return nil
	}
	defer func() { notifySend = prev }()

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	require.NoError(t, d.Announce(NotifyOptions{SpecVersion: V11}))
	require.NoError(t, d.Update(NotifyOptions{SpecVersion: V11}))

	next, ok := captured.Get("NEXTBOOTID.UPNP.ORG")
	require.True(t, ok)
	assert.Equal(t, "2", next)
}

func TestDeviceUnavailableSendsByebye(t *testing.T) {
	var captured *httpu.Request
	prev := notifySend
	notifySend = func(req *httpu.Request, opts NotifyOptions) error {
		captured = req
		return nil
	}
	defer func() { notifySend = prev }()

	d := NewDevice(RootDevice(), "uuid:abc::upnp:rootdevice", "http://10.0.0.1/desc.xml")
	require.NoError(t, d.Announce(NotifyOptions{SpecVersion: V10}))
	require.NoError(t, d.Unannounce(NotifyOptions{SpecVersion: V10}))

	nts, ok := captured.Get("NTS")
	require.True(t, ok)
	assert.Equal(t, "ssdp:byebye", nts)
}
