package httpu

import (
	"context"
	"net"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/upnpcore/ssdp/iface"
	"github.com/upnpcore/ssdp/ssdperr"
	"github.com/upnpcore/ssdp/ssdplog"
)

// ReceiveBufferSize is the fixed per-datagram buffer; SSDP messages larger
// than one MTU are truncated, and a truncated datagram's parse failure is
// treated as a discardable per-datagram error, never fatal to the search.
const ReceiveBufferSize = 1500

// Options configures the socket-creation policy of spec.md §4.4.
type Options struct {
	Interface        string
	IPVersion        iface.IPVersion
	LocalPort        int
	RecvTimeout      time.Duration
	PacketTTL        int
	LocalNetworkOnly bool
	LoopBackAlso     bool
}

// CreateSocket implements spec.md §4.4's create_multicast_socket policy.
// When toAddr is not a multicast address (the search_once_to_device unicast
// path) the group-join and multicast-TTL/loopback steps are skipped; the
// bind, read-timeout, and packet-TTL steps still apply.
func CreateSocket(toAddr *net.UDPAddr, opts Options) (*net.UDPConn, error) {
	version := opts.IPVersion
	if version == iface.Either {
		if toAddr.IP.To4() != nil {
			version = iface.V4
		} else {
			version = iface.V6
		}
	}

	var localIP net.IP
	if resolved, ok := iface.AddressForInterface(opts.Interface, version); ok {
		localIP = resolved
	} else {
		localIP = iface.WildcardAddress(version)
	}

	network := "udp4"
	if version == iface.V6 {
		network = "udp6"
	}

	conn, err := net.ListenUDP(network, &net.UDPAddr{IP: localIP, Port: opts.LocalPort})
	if err != nil {
		return nil, ssdperr.NetworkTransport(err)
	}

	if opts.RecvTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(opts.RecvTimeout)); err != nil {
			conn.Close()
			return nil, ssdperr.NetworkTransport(err)
		}
	}

	if opts.PacketTTL > 0 {
		if version == iface.V4 {
			_ = ipv4.NewConn(conn).SetTTL(opts.PacketTTL)
		} else {
			_ = ipv6.NewConn(conn).SetHopLimit(opts.PacketTTL)
		}
	}

	if !toAddr.IP.IsMulticast() {
		return conn, nil
	}

	toIsV4 := toAddr.IP.To4() != nil
	localIsV4 := localIP.To4() != nil

	switch {
	case toIsV4 && localIsV4:
		p := ipv4.NewPacketConn(conn)
		ttl := 10
		if opts.LocalNetworkOnly {
			ttl = 1
		}
		if err := p.SetMulticastTTL(ttl); err != nil {
			conn.Close()
			return nil, ssdperr.NetworkTransport(err)
		}
		if err := p.SetMulticastLoopback(opts.LoopBackAlso); err != nil {
			conn.Close()
			return nil, ssdperr.NetworkTransport(err)
		}
		if ifc, err := joinInterface(opts.Interface); err == nil {
			_ = p.JoinGroup(ifc, &net.UDPAddr{IP: toAddr.IP})
		}
	case !toIsV4 && !localIsV4:
		p := ipv6.NewPacketConn(conn)
		if err := p.SetMulticastLoopback(opts.LoopBackAlso); err != nil {
			conn.Close()
			return nil, ssdperr.NetworkTransport(err)
		}
		if ifc, err := joinInterface(opts.Interface); err == nil {
			_ = p.JoinGroup(ifc, &net.UDPAddr{IP: toAddr.IP})
		}
	default:
		conn.Close()
		return nil, ssdperr.ErrInvalidValue(ssdperr.SourceField, "ip_version", "mixed address families")
	}

	return conn, nil
}

func joinInterface(name string) (*net.Interface, error) {
	if name == "" {
		return nil, ssdperr.ErrInvalidValueForType("Interface", "")
	}
	return net.InterfaceByName(name)
}

// Multicast sends req to toAddr and loops receiving responses into a fixed
// 1500-byte buffer until the read deadline (options.RecvTimeout) elapses.
// Malformed datagrams are logged and skipped; a timeout ends the loop
// without error.
func Multicast(ctx context.Context, req *Request, toAddr *net.UDPAddr, opts Options) ([]*Response, error) {
	conn, err := CreateSocket(toAddr, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.WriteToUDP(req.Bytes(), toAddr); err != nil {
		return nil, ssdperr.NetworkTransport(err)
	}

	var responses []*Response
	buf := make([]byte, ReceiveBufferSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return responses, nil
			}
			return nil, ssdperr.NetworkTransport(err)
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		resp, perr := ParseResponse(datagram)
		if perr != nil {
			ssdplog.Warn(ctx, "discarding malformed SSDP datagram", "error", perr)
			continue
		}
		responses = append(responses, resp)
	}
}

// MulticastOnce sends req to toAddr without entering a receive loop, used
// by the Notify Engine which is send-only.
func MulticastOnce(req *Request, toAddr *net.UDPAddr, opts Options) error {
	conn, err := CreateSocket(toAddr, opts)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.WriteToUDP(req.Bytes(), toAddr); err != nil {
		return ssdperr.NetworkTransport(err)
	}
	return nil
}
