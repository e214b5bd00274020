package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/ipv4"
)

// BroadcastAddr is the limited broadcast address queries are sent to.
var BroadcastAddr = net.IPv4bcast

// Transport is the datagram socket used by a Session.
type Transport interface {
	// WriteTo sends a datagram to dst.
	WriteTo(b []byte, dst net.Addr) (int, error)
	// ReadFrom receives a datagram. ifname is the local interface it
	// arrived on, empty if unknown.
	ReadFrom(b []byte) (n int, src net.Addr, ifname string, err error)
	// SetReadDeadline bounds the next ReadFrom.
	SetReadDeadline(t time.Time) error
	Close() error
}

// UDPTransport is a broadcast capable IPv4 UDP socket.
type UDPTransport struct {
	conn net.PacketConn
	pc   *ipv4.PacketConn
}

// ListenUDP opens a UDP socket on laddr with broadcast enabled.
// An empty laddr binds to an ephemeral port on all interfaces.
func ListenUDP(ctx context.Context, laddr string) (*UDPTransport, error) {
	if laddr == "" {
		laddr = ":0"
	}
	lc := net.ListenConfig{Control: enableBroadcast}
	c, err := lc.ListenPacket(ctx, "udp4", laddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %v: %w", laddr, err)
	}
	t := &UDPTransport{conn: c, pc: ipv4.NewPacketConn(c)}
	if err := t.pc.SetControlMessage(ipv4.FlagInterface, true); err != nil {
		// not supported on all platforms, only costs the interface name
		glog.V(1).Infof("interface control message unavailable: %v", err)
	}
	return t, nil
}

// BroadcastTarget returns the broadcast destination for port.
func BroadcastTarget(port int) *net.UDPAddr {
	return &net.UDPAddr{IP: BroadcastAddr, Port: port}
}

// ResolveTarget parses host:port, host alone uses DefaultPort.
func ResolveTarget(target string) (*net.UDPAddr, error) {
	if target == "" {
		return BroadcastTarget(DefaultPort), nil
	}
	if _, _, err := net.SplitHostPort(target); err != nil {
		target = net.JoinHostPort(target, strconv.Itoa(DefaultPort))
	}
	addr, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", target, err)
	}
	return addr, nil
}

// LocalAddr returns the bound address.
func (t *UDPTransport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

// WriteTo implements Transport.
func (t *UDPTransport) WriteTo(b []byte, dst net.Addr) (int, error) {
	return t.pc.WriteTo(b, nil, dst)
}

// ReadFrom implements Transport.
func (t *UDPTransport) ReadFrom(b []byte) (int, net.Addr, string, error) {
	n, cm, src, err := t.pc.ReadFrom(b)
	if err != nil {
		return n, src, "", err
	}
	var ifname string
	if cm != nil && cm.IfIndex > 0 {
		if ifi, err := net.InterfaceByIndex(cm.IfIndex); err == nil {
			ifname = ifi.Name
		}
	}
	return n, src, ifname, nil
}

// SetReadDeadline implements Transport.
func (t *UDPTransport) SetReadDeadline(deadline time.Time) error {
	return t.pc.SetReadDeadline(deadline)
}

// Close implements io.Closer.
func (t *UDPTransport) Close() error {
	return t.pc.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
