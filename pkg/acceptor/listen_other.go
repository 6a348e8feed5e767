//go:build !linux

package acceptor

import (
	"fmt"
	"net"
	"strconv"
)

func listen(port int) (net.Listener, error) {
	ln, err := net.Listen("tcp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	return ln, nil
}
