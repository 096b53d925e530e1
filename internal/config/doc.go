// Package config loads lynxtop's own configuration from
// ~/.config/lynxtop/config.toml: the control-plane API URL, the API
// token, and where the debug log goes. Missing files fall back to
// defaults; a malformed file is a startup error.
package config
