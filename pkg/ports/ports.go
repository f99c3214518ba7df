package ports

import (
	"fmt"
	"net"
	"strconv"
)

const (
	// DefaultPort is the port the dev proxy exposes when none is configured
	DefaultPort = 8888
	// DefaultStaticPort is the starting port for the static asset server
	DefaultStaticPort = 3999

	maxPort = 65535
)

// Acquire obtains a free TCP port from the OS.
//
// When preferred is set it must be granted exactly: a preferred port that is
// already bound fails with errMsg and the requested value, it is never
// silently substituted. When preferred is zero the first free port at or
// above fallback is returned; a zero fallback accepts any ephemeral port.
func Acquire(preferred, fallback int, errMsg string) (int, error) {
	if preferred > 0 {
		if !bindable(preferred) {
			return 0, fmt.Errorf("%s: '%d'", errMsg, preferred)
		}
		return preferred, nil
	}

	if fallback <= 0 {
		return anyFree()
	}

	for port := fallback; port <= maxPort; port++ {
		if bindable(port) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("no free port found at or above %d", fallback)
}

// bindable reports whether a listener can be opened on the given port
func bindable(port int) bool {
	l, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return false
	}
	l.Close()
	return true
}

// anyFree asks the OS for an ephemeral port
func anyFree() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to acquire a free port: %w", err)
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address: %s", l.Addr())
	}
	return addr.Port, nil
}
