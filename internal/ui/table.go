package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/moresonsunn/lynxtop/internal/state"
)

// chromeLines is the vertical space taken by header, detail and status
// bar around the table.
const chromeLines = 5

func newServerTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns(serverColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return restyleTable(t, theme)
}

func restyleTable(t table.Model, theme Theme) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color(theme.Muted)).
		BorderForeground(lipgloss.Color(theme.Surface)).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(theme.Text)).
		Background(lipgloss.Color(theme.Surface)).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func serverColumns() []table.Column {
	return []table.Column{
		{Title: "NAME", Width: 20},
		{Title: "TYPE", Width: 12},
		{Title: "STATUS", Width: 11},
		{Title: "CPU", Width: 7},
		{Title: "MEM", Width: 12},
		{Title: "PLAYERS", Width: 8},
		{Title: "UPTIME", Width: 10},
	}
}

// serverRows renders the roster joined with the stats map. A server
// without a stats entry yet shows placeholders, not zeros.
func serverRows(snap state.State) []table.Row {
	rows := make([]table.Row, 0, len(snap.Servers))
	for _, srv := range snap.Servers {
		cpu, mem, players, uptime := "-", "-", "-", "-"
		if stats, ok := snap.ServerStats[srv.ID]; ok {
			cpu = fmt.Sprintf("%.1f%%", stats.CPUPercent)
			mem = formatBytes(stats.MemoryUsed)
			if stats.Players != nil {
				players = fmt.Sprintf("%d/%d", len(stats.Players), srv.MaxPlayers)
			}
			uptime = formatUptime(stats.UptimeSeconds)
		}
		rows = append(rows, table.Row{
			srv.Name, srv.Type, srv.Status, cpu, mem, players, uptime,
		})
	}
	return rows
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/float64(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.0f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.0f KiB", float64(n)/float64(1<<10))
	case n > 0:
		return fmt.Sprintf("%d B", n)
	default:
		return "-"
	}
}

func formatUptime(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd%dh", int(d.Hours())/24, int(d.Hours())%24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
