package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moresonsunn/lynxtop/internal/lynx"
)

func TestMergeStats_PreservesPlayersWhenIncomingOmitsThem(t *testing.T) {
	prev := map[string]lynx.ServerStats{
		"x": {CPUPercent: 10, Players: []lynx.Player{{Name: "a"}, {Name: "b"}}},
	}
	incoming := map[string]lynx.ServerStats{
		"x": {CPUPercent: 55, MemoryUsed: 1 << 20},
	}

	merged := MergeStats(prev, incoming)

	got := merged["x"]
	assert.Equal(t, 55.0, got.CPUPercent)
	assert.Equal(t, int64(1<<20), got.MemoryUsed)
	require.Len(t, got.Players, 2)
	assert.Equal(t, "a", got.Players[0].Name)
}

func TestMergeStats_IncomingPlayersWin(t *testing.T) {
	prev := map[string]lynx.ServerStats{
		"x": {Players: []lynx.Player{{Name: "a"}}},
	}
	incoming := map[string]lynx.ServerStats{
		"x": {Players: []lynx.Player{}},
	}

	merged := MergeStats(prev, incoming)

	// An empty, non-nil list means "nobody online", not "omitted".
	require.NotNil(t, merged["x"].Players)
	assert.Len(t, merged["x"].Players, 0)
}

func TestMergeStats_AbsentIDsAreNeverDeleted(t *testing.T) {
	prev := map[string]lynx.ServerStats{
		"x": {CPUPercent: 10},
		"y": {CPUPercent: 20},
	}
	incoming := map[string]lynx.ServerStats{
		"x": {CPUPercent: 11},
	}

	merged := MergeStats(prev, incoming)

	assert.Equal(t, 11.0, merged["x"].CPUPercent)
	assert.Equal(t, 20.0, merged["y"].CPUPercent)
}

func TestMergeStats_EmptyPrevious(t *testing.T) {
	merged := MergeStats(nil, map[string]lynx.ServerStats{"x": {CPUPercent: 1}})
	require.Len(t, merged, 1)
	assert.Equal(t, 1.0, merged["x"].CPUPercent)
}

func TestMergeServerInfo_AbsentIDsAreNeverDeleted(t *testing.T) {
	prev := map[string]lynx.ServerInfo{
		"x": {ID: "x", World: "old"},
		"y": {ID: "y"},
	}
	incoming := map[string]lynx.ServerInfo{
		"x": {ID: "x", World: "new"},
	}

	merged := MergeServerInfo(prev, incoming)

	assert.Equal(t, "new", merged["x"].World)
	assert.Contains(t, merged, "y")
}
