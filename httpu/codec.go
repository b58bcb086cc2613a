// Package httpu implements the line-oriented, CRLF-delimited HTTP-over-UDP
// codec SSDP rides on, plus the multicast/unicast UDP transport beneath it.
// The wire format is grounded on the raw fmt.Sprintf CRLF message building
// in the teacher's server/dlna/ssdp.go; the parser has no direct teacher
// analogue (the retrieved original source never finished its response
// parser) and is written directly from spec.md §4.3.
package httpu

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/upnpcore/ssdp/ssdperr"
)

// HeaderField is a single name/value pair in insertion order.
type HeaderField struct {
	Name  string
	Value string
}

// Request is an outbound HTTPU message: M-SEARCH or NOTIFY, with an
// insertion-ordered header list. There is no request body in SSDP.
type Request struct {
	Method   string
	Resource string
	Headers  []HeaderField
}

// NewRequest creates a Request for the given method with the default "*"
// resource.
func NewRequest(method string) *Request {
	return &Request{Method: method, Resource: "*"}
}

// Set appends a header, or updates it in place if the name is already
// present (case-sensitive: headers are serialized exactly as supplied).
func (r *Request) Set(name, value string) {
	for i := range r.Headers {
		if r.Headers[i].Name == name {
			r.Headers[i].Value = value
			return
		}
	}
	r.Headers = append(r.Headers, HeaderField{Name: name, Value: value})
}

// Get returns a previously-set header's value.
func (r *Request) Get(name string) (string, bool) {
	for _, h := range r.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// Has reports required-header presence, used by callers enforcing the
// "headers required by the active spec-version must be present before
// serialization" invariant.
func (r *Request) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Bytes renders the request to its wire form:
// METHOD SP RESOURCE SP HTTP/1.1 CRLF, HEADER: VALUE CRLF lines, blank CRLF.
func (r *Request) Bytes() []byte {
	resource := r.Resource
	if resource == "" {
		resource = "*"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", r.Method, resource)
	for _, h := range r.Headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h.Name, h.Value)
	}
	b.WriteString("\r\n")
	return b.Bytes()
}

// Response is a parsed inbound HTTPU message: the status line, headers
// uppercased on ingest, and an optional opaque body.
type Response struct {
	Protocol string
	Version  string
	Code     int
	Message  string
	Headers  map[string]string
	Body     []byte
}

// Header looks up a header by name, case-insensitively (names are
// normalized to uppercase at parse time).
func (r *Response) Header(name string) (string, bool) {
	v, ok := r.Headers[strings.ToUpper(name)]
	return v, ok
}

var (
	statusLineRE = regexp.MustCompile(`^HTTP/(\d+\.\d+)\s+(\d+)\s+(.*)$`)
	headerLineRE = regexp.MustCompile(`^([A-Za-z0-9_\-]+)\s*:\s*(.*)$`)
)

// ParseResponse implements the parser of spec.md §4.3: split at the first
// CRLFCRLF, decode the header section as UTF-8, match the status line,
// then match each remaining header line. Header names are uppercased;
// duplicate names mean last one wins.
func ParseResponse(data []byte) (*Response, error) {
	sep := []byte("\r\n\r\n")
	idx := bytes.Index(data, sep)

	var headerSection, body []byte
	if idx < 0 {
		headerSection = data
	} else {
		headerSection = data[:idx]
		body = data[idx+len(sep):]
	}

	if !utf8.Valid(headerSection) {
		return nil, ssdperr.ErrSourceEncoding(fmt.Errorf("header section is not valid utf-8"))
	}

	lines := strings.Split(string(headerSection), "\r\n")
	if len(lines) == 0 {
		return nil, ssdperr.ErrInvalidValueForType("Response", string(headerSection))
	}

	m := statusLineRE.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, ssdperr.ErrInvalidValueForType("Response", lines[0])
	}

	code, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, ssdperr.ErrInvalidValue(ssdperr.SourceSocket, "STATUS", m[2])
	}
	if code != 200 {
		return nil, ssdperr.ErrInvalidValue(ssdperr.SourceSocket, "STATUS", m[2])
	}

	resp := &Response{
		Protocol: "HTTP",
		Version:  m[1],
		Code:     code,
		Message:  m[3],
		Headers:  map[string]string{},
		Body:     body,
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		hm := headerLineRE.FindStringSubmatch(line)
		if hm == nil {
			return nil, ssdperr.ErrInvalidValueForType("HeaderLine", line)
		}
		resp.Headers[strings.ToUpper(hm[1])] = hm[2]
	}

	return resp, nil
}
