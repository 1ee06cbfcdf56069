package services

import (
	"fmt"
	"net"
	"strconv"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// FindAvailablePort returns the first port in [first, last] that the MCP
// HTTP transport could bind on host. An empty host checks all interfaces,
// matching how `mcp serve` listens. The port is released before returning,
// so another process may still take it first.
func FindAvailablePort(host string, first, last int) (int, error) {
	if first < 1 || last > 65535 || first > last {
		return 0, fmt.Errorf("%w: port range %d-%d", domain.ErrInvalidInput, first, last)
	}
	for port := first; port <= last; port++ {
		l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			continue
		}
		_ = l.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no free MCP port in range %d-%d", first, last)
}
