package services

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort("127.0.0.1", 38100, 38199)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, 38100)
	assert.LessOrEqual(t, port, 38199)

	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	require.NoError(t, err)
	_ = l.Close()
}

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	busy := l.Addr().(*net.TCPAddr).Port

	_, err = FindAvailablePort("127.0.0.1", busy, busy)
	assert.EqualError(t, err, fmt.Sprintf("no free MCP port in range %d-%d", busy, busy))
}

func TestFindAvailablePort_InvalidRange(t *testing.T) {
	tests := []struct {
		name        string
		first, last int
	}{
		{"zero start", 0, 10},
		{"reversed", 9000, 8000},
		{"beyond max", 65000, 70000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindAvailablePort("", tt.first, tt.last)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
