package ssdp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/upnpcore/ssdp/httpu"
	"github.com/upnpcore/ssdp/ssdperr"
)

var requiredResponseHeaders = []string{"CACHE-CONTROL", "DATE", "EXT", "LOCATION", "SERVER", "ST", "USN"}

var serverHeaderRE = regexp.MustCompile(`^([^/]+)/([\d.]+),?\s+([^/]+)/([\d.]+),?\s+([^/]+)/([\d.]+)$`)
var maxAgeRE = regexp.MustCompile(`max-age\s*=\s*(\d+)`)

// SearchResponse is the domain object derived from a raw httpu.Response,
// grounded on the fetchDeviceDescription/parseLocationFromResponse pairing
// in the teacher's server/sonos_cast/discovery.go, generalized to every
// field spec.md §4.8 requires rather than just LOCATION.
type SearchResponse struct {
	MaxAge       time.Duration
	Date         string
	Versions     ProductVersions
	SearchTarget SearchTarget
	ServiceName  string
	Location     string
	BootID       uint64
	ConfigID     *uint64
	SearchPort   *uint16
	OtherHeaders map[string]string
}

// toSearchResponse implements the nine-step validation of spec.md §4.8.
func toSearchResponse(resp *httpu.Response) (*SearchResponse, error) {
	if err := checkRequired(resp.Headers, requiredResponseHeaders); err != nil {
		return nil, err
	}

	if err := checkEmpty(resp.Headers["EXT"], "EXT"); err != nil {
		return nil, err
	}

	serverValue := resp.Headers["SERVER"]
	m, err := checkRegex(serverValue, "SERVER", serverHeaderRE)
	if err != nil {
		return nil, err
	}
	versions := ProductVersions{
		Platform: ProductVersion{Name: m[1], Version: m[2]},
		UPnP:     ProductVersion{Name: m[3], Version: m[4]},
		Product:  ProductVersion{Name: m[5], Version: m[6]},
	}

	cacheControl := resp.Headers["CACHE-CONTROL"]
	maxAgeMatch, err := checkRegex(cacheControl, "CACHE-CONTROL", maxAgeRE)
	if err != nil {
		return nil, err
	}
	maxAgeSeconds, err := strconv.ParseUint(maxAgeMatch[1], 10, 64)
	if err != nil {
		return nil, ssdperr.ErrInvalidValue(ssdperr.SourceHeader, "CACHE-CONTROL", cacheControl)
	}

	date := checkNotEmpty(resp.Headers["DATE"], "Thu, 01 Jan 1970 00:00:00 GMT")
	location := checkNotEmpty(resp.Headers["LOCATION"], "http://www.example.org")

	usn := checkNotEmpty(resp.Headers["USN"], "")
	if usn == "" {
		return nil, ssdperr.ErrMissingRequiredValue(ssdperr.SourceHeader, "USN")
	}
	stValue := checkNotEmpty(resp.Headers["ST"], "")
	if stValue == "" {
		return nil, ssdperr.ErrMissingRequiredValue(ssdperr.SourceHeader, "ST")
	}

	searchTarget, err := ParseSearchTarget(stValue)
	if err != nil {
		return nil, err
	}

	sr := &SearchResponse{
		MaxAge:       time.Duration(maxAgeSeconds) * time.Second,
		Date:         date,
		Versions:     versions,
		SearchTarget: searchTarget,
		ServiceName:  usn,
		Location:     location,
		OtherHeaders: map[string]string{},
	}

	if versions.UPnP.Version == "2.0" {
		bootIDStr, ok := resp.Headers["BOOTID.UPNP.ORG"]
		if !ok {
			bootIDStr = "0"
		}
		bootID, err := strconv.ParseUint(strings.TrimSpace(bootIDStr), 10, 64)
		if err != nil {
			return nil, ssdperr.ErrInvalidValue(ssdperr.SourceHeader, "BOOTID.UPNP.ORG", bootIDStr)
		}
		sr.BootID = bootID

		if v, ok := resp.Headers["CONFIGID.UPNP.ORG"]; ok {
			if cid, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil {
				sr.ConfigID = &cid
			}
		}
		if v, ok := resp.Headers["SEARCHPORT.UPNP.ORG"]; ok {
			if sp, err := strconv.ParseUint(strings.TrimSpace(v), 10, 16); err == nil {
				port := uint16(sp)
				sr.SearchPort = &port
			}
		}
	}

	consumed := map[string]bool{
		"CACHE-CONTROL": true, "DATE": true, "EXT": true, "LOCATION": true,
		"SERVER": true, "ST": true, "USN": true,
		"BOOTID.UPNP.ORG": true, "CONFIGID.UPNP.ORG": true, "SEARCHPORT.UPNP.ORG": true,
	}
	for k, v := range resp.Headers {
		if !consumed[k] {
			sr.OtherHeaders[k] = v
		}
	}

	return sr, nil
}
