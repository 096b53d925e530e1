package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/moresonsunn/lynxtop/internal/config"
	"github.com/moresonsunn/lynxtop/internal/lynx"
	"github.com/moresonsunn/lynxtop/internal/prefs"
	"github.com/moresonsunn/lynxtop/internal/state"
	"github.com/moresonsunn/lynxtop/internal/ui"
)

// Options configure the lynxtop application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lynxtop/prefs.toml
	Token      string // overrides the config token when set
}

const reachabilityTimeout = 3 * time.Second

// Run boots the lynxtop TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger := newLogger(cfg.LogPath)
	defer func() { _ = logger.Sync() }()

	token := strings.TrimSpace(opts.Token)
	if token == "" {
		token = cfg.Token
	}
	var creds lynx.Credentials
	if token != "" {
		creds = lynx.TokenCredentials(token)
	}

	client, err := lynx.NewClient(cfg.APIURL, creds)
	if err != nil {
		return fmt.Errorf("init lynx client: %w", err)
	}
	if err := ensureReachable(ctx, client); err != nil {
		return fmt.Errorf("lynx api at %s unreachable: %w", cfg.APIURL, err)
	}

	store := state.NewStore()
	gate := &state.Gate{}

	engine := NewEngine(client, store, gate, clock.New(), logger, creds != nil)
	engine.Start(ctx)
	defer engine.Abort()

	return ui.Run(ctx, ui.Options{
		Store:         store,
		Client:        client,
		Gate:          gate,
		OnForeground:  engine.ForegroundSync,
		Authenticated: creds != nil,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
	})
}

// ensureReachable pings the one endpoint that answers without auth, so a
// typo'd URL fails at startup instead of as an endless stream of refresh
// warnings.
func ensureReachable(ctx context.Context, client *lynx.Client) error {
	checkCtx, cancel := context.WithTimeout(ctx, reachabilityTimeout)
	defer cancel()
	_, err := client.FetchServerTypes(checkCtx)
	return err
}

// newLogger builds the operability logger. The TUI owns the terminal, so
// log output goes to a file; when the file cannot be prepared the logger
// degrades to a no-op rather than failing startup.
func newLogger(path string) *zap.Logger {
	if strings.TrimSpace(path) == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
