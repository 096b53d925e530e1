package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	if m.helpRelease != nil {
		return m.renderHelp(styles)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(styles))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.renderDetail(styles))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(styles))
	return b.String()
}

func (m Model) renderHeader(styles Styles) string {
	sep := "  "
	parts := []string{styles.Logo.Render(" lynxtop ")}

	if !m.snapshot.Initialized {
		parts = append(parts, styles.Warning.Render("loading…"))
		return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
	}

	running := 0
	for _, srv := range m.snapshot.Servers {
		if srv.Status == "running" {
			running++
		}
	}
	parts = append(parts, fmt.Sprintf("servers %d/%d", running, len(m.snapshot.Servers)))

	if d := m.snapshot.Dashboard; d != nil {
		parts = append(parts, fmt.Sprintf("players %d", d.TotalPlayers))
		parts = append(parts, fmt.Sprintf("cpu %.0f%%", d.CPUPercent))
	}
	if h := m.snapshot.Health; h != nil && h.Status != "" && h.Status != "ok" {
		parts = append(parts, styles.Danger.Render("health "+h.Status))
	}
	if n := len(m.snapshot.Alerts); n > 0 {
		parts = append(parts, styles.Warning.Render(fmt.Sprintf("alerts %d", n)))
	}
	if m.opts.Authenticated {
		parts = append(parts, styles.Muted.Render(fmt.Sprintf("users %d", len(m.snapshot.Users))))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderDetail shows the slow-moving info for the selected server.
func (m Model) renderDetail(styles Styles) string {
	id := m.selectedServerID()
	if id == "" {
		return styles.Muted.Render(" no server selected")
	}
	srv, _ := m.snapshot.ServerByID(id)
	line := fmt.Sprintf(" %s %s", srv.Name, styles.statusStyle(srv.Status).Render(srv.Status))
	if info, ok := m.snapshot.ServerInfo[id]; ok {
		if info.Address != "" {
			line += styles.Muted.Render("  " + info.Address)
		}
		if info.World != "" {
			line += styles.Muted.Render("  world=" + info.World)
		}
		if len(info.Mods) > 0 {
			line += styles.Muted.Render(fmt.Sprintf("  mods=%d", len(info.Mods)))
		}
	}
	return line
}

func (m Model) renderStatusBar(styles Styles) string {
	left := " ?"
	if m.notice != "" {
		left = " " + m.notice
	}
	right := ""
	if !m.lastUpdated.IsZero() {
		right = m.lastUpdated.Format("15:04:05") + " "
	}
	if m.opts.Gate != nil && m.opts.Gate.Held() {
		right = "paused " + right
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp(styles Styles) string {
	keys := []struct{ k, desc string }{
		{"↑/k ↓/j", "select server"},
		{"s", "start server"},
		{"x", "stop server"},
		{"R", "restart server"},
		{"r", "refresh now"},
		{"t", "cycle theme"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("lynxtop keys"))
	b.WriteString("\n\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			styles.Text.Render(fmt.Sprintf("%-9s", k.k)),
			styles.Muted.Render(k.desc)))
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("background refresh is paused while this panel is open"))
	box := styles.Overlay.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
