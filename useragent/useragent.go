// Package useragent assembles the three-token UPnP USER-AGENT / SERVER
// string and defines the injected platform-probe collaborator spec.md calls
// for in its design notes (drop the source's process-wide memoized statics;
// make the probe an injectable dependency so tests are deterministic).
package useragent

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// ProductVersion is a (name, version) pair rendering as "name/version".
type ProductVersion struct {
	Name    string
	Version string
}

func (p ProductVersion) String() string {
	return fmt.Sprintf("%s/%s", p.Name, p.Version)
}

// ProductVersions is the ordered (platform, upnp, product) triple the
// SERVER/USER-AGENT headers carry, rendering space-separated.
type ProductVersions struct {
	Platform ProductVersion
	UPnP     ProductVersion
	Product  ProductVersion
}

func (p ProductVersions) String() string {
	return strings.Join([]string{p.Platform.String(), p.UPnP.String(), p.Product.String()}, " ")
}

// PlatformProbe reports the host OS name and version. Production code uses
// DefaultPlatformProbe; tests supply a fixed stub for determinism.
type PlatformProbe interface {
	Name() string
	Version() string
}

type unixPlatformProbe struct {
	once    sync.Once
	name    string
	version string
}

// DefaultPlatformProbe shells out to uname, mirroring the source's
// os::system_name/system_version helpers, and memoizes the result for the
// lifetime of the probe (not process-wide, unlike the source).
var DefaultPlatformProbe PlatformProbe = &unixPlatformProbe{}

func (p *unixPlatformProbe) probe() {
	p.once.Do(func() {
		p.name = runtime.GOOS
		p.version = "unknown"

		if out, err := exec.Command("uname", "-s").Output(); err == nil {
			if n := strings.TrimSpace(string(out)); n != "" {
				p.name = n
			}
		}
		if out, err := exec.Command("uname", "-r").Output(); err == nil {
			if v := strings.TrimSpace(string(out)); v != "" {
				p.version = v
			}
		}
	})
}

func (p *unixPlatformProbe) Name() string {
	p.probe()
	return p.name
}

func (p *unixPlatformProbe) Version() string {
	p.probe()
	return p.version
}

// StaticPlatformProbe is a fixed-value PlatformProbe for tests.
type StaticPlatformProbe struct {
	NameValue    string
	VersionValue string
}

func (s StaticPlatformProbe) Name() string    { return s.NameValue }
func (s StaticPlatformProbe) Version() string { return s.VersionValue }

// String assembles "{platform}/{platform-version} UPnP/{spec} {product}/{version}".
// When product is the zero value, def is used instead.
func String(probe PlatformProbe, specVersion string, product, def ProductVersion) string {
	if product.Name == "" {
		product = def
	}
	versions := ProductVersions{
		Platform: ProductVersion{Name: probe.Name(), Version: probe.Version()},
		UPnP:     ProductVersion{Name: "UPnP", Version: specVersion},
		Product:  product,
	}
	return versions.String()
}
