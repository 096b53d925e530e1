package state

// Optimistic mutators patch a single entity field directly, ahead of
// network confirmation. There is no rollback or reconciliation: if a later
// authoritative refresh includes the entity, the refresh wins; if it omits
// the entity, the optimistic value survives. Recency decides, not
// authority — an accepted limitation of the design.

// SetServerStatus patches one server's status in the roster. Unknown ids
// are ignored.
func (s *Store) SetServerStatus(id, status string) {
	s.Apply(func(st *State) {
		for i := range st.Servers {
			if st.Servers[i].ID == id {
				st.Servers[i].Status = status
				return
			}
		}
	})
}

// PutSetting patches one settings key locally. The settings panel pushes
// the same value to the backend on its own.
func (s *Store) PutSetting(key, value string) {
	s.Apply(func(st *State) {
		if st.Settings == nil {
			st.Settings = map[string]string{}
		}
		st.Settings[key] = value
	})
}
