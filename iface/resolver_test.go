package iface

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressForInterfaceEmptyNameIsNotFound(t *testing.T) {
	_, ok := AddressForInterface("", V4)
	assert.False(t, ok)
}

func TestAddressForInterfaceUnknownNameIsNotFound(t *testing.T) {
	_, ok := AddressForInterface("definitely-not-a-real-interface-xyz", Either)
	assert.False(t, ok)
}

func TestMatchesFiltersByFamily(t *testing.T) {
	v4 := net.ParseIP("192.168.1.1")
	v6 := net.ParseIP("fe80::1")

	assert.True(t, matches(v4, V4))
	assert.False(t, matches(v6, V4))
	assert.True(t, matches(v6, V6))
	assert.False(t, matches(v4, V6))
	assert.True(t, matches(v4, Either))
	assert.True(t, matches(v6, Either))
}

func TestWildcardAddress(t *testing.T) {
	assert.True(t, WildcardAddress(V4).Equal(net.IPv4zero))
	assert.True(t, WildcardAddress(V6).Equal(net.IPv6zero))
}

func TestNamesDoesNotError(t *testing.T) {
	_, err := Names()
	assert.NoError(t, err)
}
