package ssdp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnpcore/ssdp/useragent"
)

func TestBuildSearchRequestV10OmitsUserAgent(t *testing.T) {
	opts := DefaultOptions()
	req := buildSearchRequest(opts, useragent.StaticPlatformProbe{NameValue: "linux", VersionValue: "6.1"})

	assert.False(t, req.Has("USER-AGENT"))
	man, ok := req.Get("MAN")
	require.True(t, ok)
	assert.Equal(t, `"ssdp:discover"`, man)
}

func TestBuildSearchRequestV11AddsUserAgent(t *testing.T) {
	opts := DefaultOptions()
	opts.SpecVersion = V11
	req := buildSearchRequest(opts, useragent.StaticPlatformProbe{NameValue: "linux", VersionValue: "6.1"})

	ua, ok := req.Get("USER-AGENT")
	require.True(t, ok)
	assert.Contains(t, ua, "UPnP/1.1")
}

func TestBuildSearchRequestV20AddsControlPointHeaders(t *testing.T) {
	opts := DefaultOptions()
	opts.SpecVersion = V20
	opts.ControlPoint = &ControlPoint{FriendlyName: "my control point"}
	req := buildSearchRequest(opts, useragent.StaticPlatformProbe{NameValue: "linux", VersionValue: "6.1"})

	cpfn, ok := req.Get("CPFN.UPNP.ORG")
	require.True(t, ok)
	assert.Equal(t, "my control point", cpfn)
}

func TestSearchOnceToDeviceRejectsV10(t *testing.T) {
	opts := DefaultOptions()
	_, err := SearchOnceToDevice(context.Background(), opts, "10.0.0.5:1900")
	assert.Error(t, err)
}

func TestSearchOnceRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxWaitTime = 0
	_, err := SearchOnce(context.Background(), opts)
	assert.Error(t, err)
}
