//go:build linux

package acceptor

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listen builds the socket by hand so the accept backlog is exactly Backlog;
// net.Listen always uses the system maximum.
func listen(port int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("%w: socket: %w", ErrListenFailed, err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)

		return nil, fmt.Errorf("%w: SO_REUSEADDR: %w", ErrBindFailed, err)
	}

	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: port}); err != nil {
		_ = unix.Close(fd)

		return nil, fmt.Errorf("%w: 0.0.0.0:%d: %w", ErrBindFailed, port, err)
	}

	if err := unix.Listen(fd, Backlog); err != nil {
		_ = unix.Close(fd)

		return nil, fmt.Errorf("%w: 0.0.0.0:%d: %w", ErrListenFailed, port, err)
	}

	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp:0.0.0.0:%d", port))

	// FileListener dups the descriptor; the original is closed here.
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	return ln, nil
}
