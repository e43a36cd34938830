// Package config provides the discordsend tool's configuration.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arenborg/discordrest/discord"
)

const (
	apiVersionDefault = 10
	localeDefault     = "en-US"
	timeoutDefault    = 30
	logLevelDefault   = slog.LevelInfo
)

type Config struct {
	App      ConfigApp
	Proxy    ConfigProxy
	Channels []ConfigChannel
}

type ConfigApp struct {
	Token      string `toml:"token"`
	APIVersion int    `toml:"api_version"`
	Locale     string `toml:"locale"`
	DBPath     string `toml:"db_path"`
	LogLevel   string `toml:"loglevel"`
	Timeout    int    `toml:"timeout"`
}

func (ca ConfigApp) LoggerLevel() slog.Level {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(ca.LogLevel)]
	if !ok {
		return logLevelDefault
	}
	return v
}

type ConfigProxy struct {
	URL string `toml:"url"`
}

// ProxyURL returns the parsed proxy URL or nil when no proxy is configured.
func (cp ConfigProxy) ProxyURL() (*url.URL, error) {
	if cp.URL == "" {
		return nil, nil
	}
	return url.Parse(cp.URL)
}

// ConfigChannel maps a name to a Discord channel ID.
type ConfigChannel struct {
	Name string `toml:"name"`
	ID   string `toml:"id"`
}

// Snowflake returns the channel ID as a snowflake.
func (cc ConfigChannel) Snowflake() discord.Snowflake {
	s, _ := discord.ParseSnowflake(cc.ID)
	return s
}

// FromFile loads and validates the configuration from a TOML file.
func FromFile(path string) (Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, err
	}
	if err := parseConfig(&config); err != nil {
		return config, err
	}
	return config, nil
}

func parseConfig(config *Config) error {
	if config.App.Token == "" {
		return fmt.Errorf("no token defined")
	}
	if config.Proxy.URL != "" {
		if _, err := url.Parse(config.Proxy.URL); err != nil {
			return fmt.Errorf("invalid proxy url: %w", err)
		}
	}
	channelNames := make(map[string]bool)
	for _, x := range config.Channels {
		if x.Name == "" {
			return fmt.Errorf("one channel has no name")
		}
		if channelNames[x.Name] {
			return fmt.Errorf("channel name %s not unique", x.Name)
		}
		channelNames[x.Name] = true
		if _, err := discord.ParseSnowflake(x.ID); err != nil {
			return fmt.Errorf("channel %s has invalid id: %w", x.Name, err)
		}
	}
	if config.App.APIVersion <= 0 {
		config.App.APIVersion = apiVersionDefault
	}
	if config.App.Locale == "" {
		config.App.Locale = localeDefault
	}
	if config.App.Timeout <= 0 {
		config.App.Timeout = timeoutDefault
	}
	if config.App.DBPath == "" {
		config.App.DBPath = "."
	}
	return nil
}
