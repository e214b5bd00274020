package discovery

import (
	"context"
	"flag"
	"time"
)

// Config defines the options of a scan.
type Config struct {
	// Target is host[:port] queries are sent to.
	Target string
	// Listen is the local address to bind, empty for any.
	Listen   string
	Duration time.Duration
	Timeout  time.Duration
}

var defaultConfig = Config{
	Target:   BroadcastTarget(DefaultPort).String(),
	Duration: DefaultDuration,
	Timeout:  DefaultTimeout,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Target, "target", defaultConfig.Target, "Query destination host[:port].")
	flag.StringVar(&defaultConfig.Listen, "listen", defaultConfig.Listen, "Local address to bind.")
	flag.DurationVar(&defaultConfig.Duration, "duration", defaultConfig.Duration, "Scan duration.")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Receive timeout per attempt.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewSession opens the transport and creates a Session from the config.
// The caller owns the transport and closes it via Session.Transport.
func (c *Config) NewSession(ctx context.Context) (*Session, error) {
	target, err := ResolveTarget(c.Target)
	if err != nil {
		return nil, err
	}
	t, err := ListenUDP(ctx, c.Listen)
	if err != nil {
		return nil, err
	}
	s := NewSession(t, target)
	s.Duration, s.Timeout = c.Duration, c.Timeout
	return s, nil
}
