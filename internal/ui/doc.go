// Package ui implements the lynxtop terminal dashboard on bubbletea.
//
// The UI is a pure consumer of the shared store: once a second it takes a
// snapshot and re-renders the roster table, header counters and selected
// server detail. It feeds two signals back into the sync engine: terminal
// focus regained (forces an immediate refresh of the volatile domains)
// and the help overlay being open (holds the suppression gate so
// background refresh pauses). Power-action keys apply an optimistic
// status patch to the store before the backend call resolves.
package ui
