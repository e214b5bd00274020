//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package discovery

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestEnableBroadcast(t *testing.T) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	require.NoError(t, err)
	f := os.NewFile(uintptr(fd), "udp4")
	defer f.Close()

	on, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST)
	require.NoError(t, err)
	require.Equal(t, 0, on)

	rc, err := f.SyscallConn()
	require.NoError(t, err)
	require.NoError(t, enableBroadcast("udp4", "0.0.0.0:0", rc))

	on, err = unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST)
	require.NoError(t, err)
	require.NotEqual(t, 0, on)
}
