package httpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBytesBitImage(t *testing.T) {
	req := NewRequest("M-SEARCH")
	req.Set("HOST", "239.255.255.250:1900")
	req.Set("MAN", `"ssdp:discover"`)
	req.Set("MX", "2")
	req.Set("ST", "upnp:rootdevice")

	out := string(req.Bytes())

	assert.True(t, strings.HasPrefix(out, "M-SEARCH * HTTP/1.1\r\n"))
	assert.True(t, strings.HasSuffix(out, "\r\n\r\n"))
	assert.Contains(t, out, "HOST: 239.255.255.250:1900\r\n")
	assert.Contains(t, out, `MAN: "ssdp:discover"`+"\r\n")
}

func TestRequestDefaultResource(t *testing.T) {
	req := NewRequest("NOTIFY")
	assert.True(t, strings.HasPrefix(string(req.Bytes()), "NOTIFY * HTTP/1.1\r\n"))
}

func TestRequestSetUpdatesInPlace(t *testing.T) {
	req := NewRequest("M-SEARCH")
	req.Set("MX", "2")
	req.Set("MX", "5")
	assert.Len(t, req.Headers, 1)
	v, ok := req.Get("MX")
	require.True(t, ok)
	assert.Equal(t, "5", v)
}

func TestParseResponseValid(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"CACHE-CONTROL: max-age=1800\r\n" +
		"DATE: Thu, 01 Jan 2020 00:00:00 GMT\r\n" +
		"EXT:\r\n" +
		"LOCATION: http://10.0.0.5:80/desc.xml\r\n" +
		"SERVER: unix/5.1 UPnP/1.0 MyProduct/1.0\r\n" +
		"ST: upnp:rootdevice\r\n" +
		"USN: uuid:1234::upnp:rootdevice\r\n" +
		"\r\n"

	resp, err := ParseResponse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Code)
	loc, ok := resp.Header("location")
	require.True(t, ok)
	assert.Equal(t, "http://10.0.0.5:80/desc.xml", loc)
}

func TestParseResponseNonUTF8Fails(t *testing.T) {
	raw := append([]byte("HTTP/1.1 200 OK\r\n"), 0xff, 0xfe)
	raw = append(raw, []byte("\r\n\r\n")...)
	_, err := ParseResponse(raw)
	require.Error(t, err)
}

func TestParseResponseNon200Fails(t *testing.T) {
	raw := "HTTP/1.1 404 Not Found\r\n\r\n"
	_, err := ParseResponse([]byte(raw))
	require.Error(t, err)
}

func TestParseResponseMalformedStatusLineFails(t *testing.T) {
	raw := "GARBAGE\r\n\r\n"
	_, err := ParseResponse([]byte(raw))
	require.Error(t, err)
}

func TestParseResponseDuplicateHeaderLastWins(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"USN: first\r\n" +
		"USN: second\r\n" +
		"\r\n"
	resp, err := ParseResponse([]byte(raw))
	require.NoError(t, err)
	v, ok := resp.Header("USN")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}
