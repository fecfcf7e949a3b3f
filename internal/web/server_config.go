package web

import "github.com/rook-computer/diceroller/internal/config"

// DefaultSimulatorListenAddr is used by the terminal simulator when no
// address is configured.
const DefaultSimulatorListenAddr = ":8080"

// ServerConfig contains settings for running the HTTP server.
//
// The remote control is off on the device unless web.listen is set; the
// simulator falls back to DefaultSimulatorListenAddr when asked to serve.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func ServerConfigFrom(cfg config.WebConfig) ServerConfig {
	return ServerConfig{ListenAddr: cfg.Listen, DevMode: cfg.Dev}
}

// Enabled reports whether a listen address is configured.
func (c ServerConfig) Enabled() bool { return c.ListenAddr != "" }
