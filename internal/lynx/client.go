package lynx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Credentials supplies authentication material for API calls. Header
// construction is owned by the auth layer; this package only attaches the
// values it is handed.
type Credentials interface {
	// AuthHeader returns the full Authorization header value, or "" when
	// the session is unauthenticated.
	AuthHeader() string
	// StreamToken returns the token passed as a query parameter when
	// opening the push stream.
	StreamToken() string
}

// TokenCredentials is a static bearer token.
type TokenCredentials string

// AuthHeader implements Credentials.
func (t TokenCredentials) AuthHeader() string {
	if t == "" {
		return ""
	}
	return "Bearer " + string(t)
}

// StreamToken implements Credentials.
func (t TokenCredentials) StreamToken() string { return string(t) }

// Fetcher defines the read surface of the Lynx API used by the sync
// engine. Implemented by *Client; useful for testing.
type Fetcher interface {
	FetchServerTypes(ctx context.Context) ([]ServerType, error)
	FetchServers(ctx context.Context) ([]Server, error)
	FetchDashboard(ctx context.Context) (*DashboardData, error)
	FetchSystemHealth(ctx context.Context) (*SystemHealth, error)
	FetchAlerts(ctx context.Context) ([]Alert, error)
	FetchUsers(ctx context.Context) ([]User, error)
	FetchRoles(ctx context.Context) ([]Role, error)
	FetchAuditLogs(ctx context.Context, page, pageSize int) ([]AuditLog, error)
	FetchFeatured(ctx context.Context, limit int) ([]Modpack, error)
	FetchStats(ctx context.Context, ttlSeconds int) (map[string]ServerStats, error)
	FetchServerInfo(ctx context.Context, id string) (*ServerInfo, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to the Lynx control-plane HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	stream    *http.Client
	creds     Credentials
	userAgent string
}

const (
	defaultUserAgent = "lynxtop/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the given base URL. creds may be nil for
// an unauthenticated session (public catalog only).
func NewClient(apiURL string, creds Credentials) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		// The push stream stays open for the whole session; it must not
		// share the per-request timeout.
		stream:    &http.Client{},
		creds:     creds,
		userAgent: defaultUserAgent,
	}, nil
}

// FetchServerTypes retrieves the public server-type catalog.
func (c *Client) FetchServerTypes(ctx context.Context) ([]ServerType, error) {
	var payload serverTypesResponse
	if err := c.get(ctx, "/server-types", &payload); err != nil {
		return nil, err
	}
	return payload.Types, nil
}

// FetchServers retrieves the current server roster.
func (c *Client) FetchServers(ctx context.Context) ([]Server, error) {
	var payload []Server
	if err := c.get(ctx, "/servers", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchDashboard retrieves fleet-wide dashboard counters.
func (c *Client) FetchDashboard(ctx context.Context) (*DashboardData, error) {
	var payload DashboardData
	if err := c.get(ctx, "/monitoring/dashboard-data", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSystemHealth retrieves control-plane host health.
func (c *Client) FetchSystemHealth(ctx context.Context) (*SystemHealth, error) {
	var payload SystemHealth
	if err := c.get(ctx, "/monitoring/system-health", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchAlerts retrieves active monitoring alerts.
func (c *Client) FetchAlerts(ctx context.Context) ([]Alert, error) {
	var payload alertsResponse
	if err := c.get(ctx, "/monitoring/alerts", &payload); err != nil {
		return nil, err
	}
	return payload.Alerts, nil
}

// FetchUsers retrieves panel accounts.
func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	var payload usersResponse
	if err := c.get(ctx, "/users", &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}

// FetchRoles retrieves permission roles.
func (c *Client) FetchRoles(ctx context.Context) ([]Role, error) {
	var payload rolesResponse
	if err := c.get(ctx, "/users/roles", &payload); err != nil {
		return nil, err
	}
	return payload.Roles, nil
}

// FetchAuditLogs retrieves one page of the audit trail.
func (c *Client) FetchAuditLogs(ctx context.Context, page, pageSize int) ([]AuditLog, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("page_size", strconv.Itoa(pageSize))
	rel := &url.URL{Path: "/users/audit-logs", RawQuery: values.Encode()}
	var payload auditLogsResponse
	if err := c.getURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Logs, nil
}

// FetchFeatured retrieves featured catalog items across all providers.
func (c *Client) FetchFeatured(ctx context.Context, limit int) ([]Modpack, error) {
	if limit <= 0 {
		limit = 6
	}
	values := url.Values{}
	values.Set("provider", "all")
	values.Set("page_size", strconv.Itoa(limit))
	rel := &url.URL{Path: "/catalog/search", RawQuery: values.Encode()}
	var payload catalogSearchResponse
	if err := c.getURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// FetchStats retrieves a bulk stats snapshot keyed by server id. The ttl
// hints how stale a cached reading the backend may serve.
func (c *Client) FetchStats(ctx context.Context, ttlSeconds int) (map[string]ServerStats, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = 5
	}
	rel := &url.URL{Path: "/servers/stats", RawQuery: "ttl=" + strconv.Itoa(ttlSeconds)}
	var payload map[string]ServerStats
	if err := c.getURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchServerInfo retrieves the detail payload for one server.
func (c *Client) FetchServerInfo(ctx context.Context, id string) (*ServerInfo, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("server id required")
	}
	var payload ServerInfo
	if err := c.get(ctx, "/servers/"+url.PathEscape(id)+"/info", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// StreamServers opens the push stream. The caller owns the returned body
// and reads newline-delimited JSON envelopes from it until EOF or error.
func (c *Client) StreamServers(ctx context.Context) (io.ReadCloser, error) {
	values := url.Values{}
	if c.creds != nil {
		values.Set("token", c.creds.StreamToken())
	}
	rel := &url.URL{Path: "/servers/stream", RawQuery: values.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	return resp.Body, nil
}

// ServerAction issues a power action (start, stop, restart) for a server.
func (c *Client) ServerAction(ctx context.Context, id, action string) error {
	switch action {
	case "start", "stop", "restart":
	default:
		return fmt.Errorf("unsupported server action %q", action)
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("server id required")
	}
	rel := &url.URL{Path: "/servers/" + url.PathEscape(id) + "/" + action}
	return c.doURL(ctx, http.MethodPost, rel, nil)
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	return c.getURL(ctx, &url.URL{Path: path}, dest)
}

func (c *Client) getURL(ctx context.Context, rel *url.URL, dest any) error {
	return c.doURL(ctx, http.MethodGet, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.creds != nil {
		if h := c.creds.AuthHeader(); h != "" {
			req.Header.Set("Authorization", h)
		}
	}
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
