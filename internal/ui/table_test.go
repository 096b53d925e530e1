package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/state"
)

func TestServerRows_JoinsRosterWithStats(t *testing.T) {
	snap := state.State{
		Servers: []lynx.Server{
			{ID: "a", Name: "lobby", Type: "paper", Status: "running", MaxPlayers: 20},
			{ID: "b", Name: "survival", Type: "forge", Status: "stopped"},
		},
		ServerStats: map[string]lynx.ServerStats{
			"a": {
				CPUPercent:    42.5,
				MemoryUsed:    512 << 20,
				UptimeSeconds: 3600,
				Players:       []lynx.Player{{Name: "steve"}, {Name: "alex"}},
			},
		},
	}

	rows := serverRows(snap)
	require.Len(t, rows, 2)

	assert.Equal(t, "lobby", rows[0][0])
	assert.Equal(t, "42.5%", rows[0][3])
	assert.Equal(t, "512 MiB", rows[0][4])
	assert.Equal(t, "2/20", rows[0][5])
	assert.Equal(t, "1h00m", rows[0][6])

	// No stats entry yet: placeholders, not zeros.
	assert.Equal(t, "-", rows[1][3])
	assert.Equal(t, "-", rows[1][5])
}

func TestServerRows_OmittedPlayersShowPlaceholder(t *testing.T) {
	snap := state.State{
		Servers: []lynx.Server{{ID: "a", Name: "lobby", MaxPlayers: 20}},
		ServerStats: map[string]lynx.ServerStats{
			"a": {CPUPercent: 1},
		},
	}

	rows := serverRows(snap)
	require.Len(t, rows, 1)
	assert.Equal(t, "-", rows[0][5])
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "-"},
		{512, "512 B"},
		{2 << 10, "2 KiB"},
		{256 << 20, "256 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in), "formatBytes(%d)", tt.in)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "-"},
		{95, "1m35s"},
		{3900, "1h05m"},
		{90000, "1d1h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.in), "formatUptime(%d)", tt.in)
	}
}
