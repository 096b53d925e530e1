package state

import "github.com/moresonsunn/lynxtop/internal/lynx"

// Merge policies. The default for sequence and singleton domains is
// wholesale replacement; refresh closures express that inline. The stats
// map is the one domain that needs real merge semantics, so it lives here.

// MergeStats folds an incoming bulk-stats payload into the previous map.
//
// For every id present in incoming, the new snapshot wins field by field
// with one exception: when the incoming entry omits the player list
// (Players == nil) and the previous entry had one, the previous list is
// retained. The bulk endpoint skips live player lookups on some calls and
// dropping the list every such tick would flicker in the UI.
//
// Ids absent from incoming keep their previous entry untouched; a partial
// refresh never deletes.
func MergeStats(prev, incoming map[string]lynx.ServerStats) map[string]lynx.ServerStats {
	merged := make(map[string]lynx.ServerStats, len(prev)+len(incoming))
	for id, entry := range prev {
		merged[id] = entry
	}
	for id, entry := range incoming {
		if entry.Players == nil {
			if old, ok := prev[id]; ok && old.Players != nil {
				entry.Players = old.Players
			}
		}
		merged[id] = entry
	}
	return merged
}

// MergeServerInfo folds successfully fetched detail entries into the
// previous map. Ids not mentioned by this batch are left alone.
func MergeServerInfo(prev, incoming map[string]lynx.ServerInfo) map[string]lynx.ServerInfo {
	merged := make(map[string]lynx.ServerInfo, len(prev)+len(incoming))
	for id, entry := range prev {
		merged[id] = entry
	}
	for id, entry := range incoming {
		merged[id] = entry
	}
	return merged
}
