//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris

package discovery

import "syscall"

// enableBroadcast is a no-op where x/sys/unix is unavailable. Broadcast then
// relies on the runtime, which enables SO_BROADCAST on IPv4 datagram sockets.
func enableBroadcast(network, address string, c syscall.RawConn) error {
	return nil
}
