package lynx

import "time"

// Server describes one managed game-server container.
type Server struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Version    string `json:"version"`
	Port       int    `json:"port"`
	MaxPlayers int    `json:"maxPlayers"`
	CreatedAt  string `json:"createdAt"`
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (s Server) ParsedCreatedAt() time.Time {
	return parseTime(s.CreatedAt)
}

// Player is one connected player as reported by a stats snapshot.
type Player struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// ServerStats is a point-in-time resource snapshot for one server.
//
// Players is nil when the stats endpoint omitted the live player list for
// this call; an empty, non-nil slice means "nobody online". Consumers that
// merge snapshots rely on that distinction.
type ServerStats struct {
	CPUPercent    float64  `json:"cpuPercent"`
	MemoryUsed    int64    `json:"memoryUsed"`
	MemoryLimit   int64    `json:"memoryLimit"`
	UptimeSeconds int64    `json:"uptimeSeconds"`
	TPS           float64  `json:"tps"`
	Players       []Player `json:"players,omitempty"`
}

// ServerInfo carries the slower-moving per-server detail payload.
type ServerInfo struct {
	ID      string   `json:"id"`
	Address string   `json:"address"`
	Image   string   `json:"image"`
	World   string   `json:"world"`
	MOTD    string   `json:"motd"`
	Mods    []string `json:"mods"`
}

// DashboardData aggregates fleet-wide counters for the overview header.
type DashboardData struct {
	TotalServers   int     `json:"totalServers"`
	RunningServers int     `json:"runningServers"`
	TotalPlayers   int     `json:"totalPlayers"`
	CPUPercent     float64 `json:"cpuPercent"`
	MemoryPercent  float64 `json:"memoryPercent"`
}

// SystemHealth reports host-level health for the control plane.
type SystemHealth struct {
	Status        string  `json:"status"`
	DiskFreeBytes int64   `json:"diskFreeBytes"`
	LoadAverage   float64 `json:"loadAverage"`
	Containers    int     `json:"containers"`
}

// Alert is an active monitoring alert.
type Alert struct {
	ID        string `json:"id"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// ParsedCreatedAt returns the alert timestamp as time.Time when possible.
func (a Alert) ParsedCreatedAt() time.Time {
	return parseTime(a.CreatedAt)
}

// User is a panel account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	LastLogin string `json:"lastLogin"`
}

// Role is a named permission set.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// AuditLog is one audit trail entry.
type AuditLog struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Target    string `json:"target"`
	CreatedAt string `json:"createdAt"`
}

// ServerType describes an installable server flavor from the public catalog.
type ServerType struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Game  string `json:"game"`
	Image string `json:"image"`
}

// Modpack is a featured catalog search result.
type Modpack struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Downloads int64  `json:"downloads"`
	IconURL   string `json:"iconUrl"`
}

// StreamEnvelope frames one message on the server push stream. Type
// discriminates the payload; only "servers" is currently emitted with a
// payload this client understands.
type StreamEnvelope struct {
	Type    string   `json:"type"`
	Servers []Server `json:"servers"`
}

// Response envelopes. The API wraps most list payloads in a keyed object;
// /servers and /servers/stats return their payloads bare.
type serverTypesResponse struct {
	Types []ServerType `json:"types"`
}

type alertsResponse struct {
	Alerts []Alert `json:"alerts"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

type rolesResponse struct {
	Roles []Role `json:"roles"`
}

type auditLogsResponse struct {
	Logs []AuditLog `json:"logs"`
}

type catalogSearchResponse struct {
	Results []Modpack `json:"results"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
