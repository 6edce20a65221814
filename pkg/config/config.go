// Package config loads renderer settings from a TOML file.
//
// Every field has a default, so a missing file is not an error when the
// default location is used. A minimal file overriding the venue looks like:
//
//	[venue]
//	name = "Zsa Zsa / Playa 3"
//	ssid = "Regatas_San Jose"
//	passphrase = "RegatasWelcome2024"
//
//	[render]
//	backend = "canvas"
//	style = "enhanced"
//	timeout = "60s"
//
//	[cache]
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/guest"
	"github.com/matzehuels/welcomescreen/pkg/payload"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
	"github.com/matzehuels/welcomescreen/pkg/render/sink"
	"github.com/matzehuels/welcomescreen/pkg/render/styles"
)

const appName = "welcomescreen"

// Defaults for a fresh install.
const (
	DefaultVenueName     = "Zsa Zsa / Playa 3"
	DefaultVenueWhatsApp = "https://wa.me/51990411197?text=Pedido%20Bungalow%20" + payload.RoomPlaceholder
	DefaultSSID          = "Regatas_San Jose"
	DefaultPassphrase    = "RegatasWelcome2024"
	DefaultBackend       = sink.Canvas
	DefaultStyle         = styles.Enhanced
	DefaultTimeout       = 60 * time.Second
	DefaultCacheTTL      = 7 * 24 * time.Hour
	DefaultRedisPrefix   = appName + ":"
)

// Config is the full configuration file.
type Config struct {
	Venue  Venue      `toml:"venue"`
	Copy   scene.Copy `toml:"copy"`
	Render Render     `toml:"render"`
	Cache  Cache      `toml:"cache"`
}

// Venue fills profile fields the booking leaves empty and holds the Wi-Fi
// passphrase, which never appears on a booking.
type Venue struct {
	Name       string `toml:"name"`
	WhatsApp   string `toml:"whatsapp"`
	SSID       string `toml:"ssid"`
	Passphrase string `toml:"passphrase"`
}

// Render holds backend defaults. Flags override them per invocation.
type Render struct {
	Backend    string        `toml:"backend"`
	Style      string        `toml:"style"`
	QRSize     int           `toml:"qr_size"`
	Timeout    time.Duration `toml:"timeout"`
	ChromePath string        `toml:"chrome_path"`
	RSVGPath   string        `toml:"rsvg_path"`
}

// Cache selects where downloaded backgrounds are kept. RedisAddr takes
// precedence over Dir when both are set.
type Cache struct {
	Disabled      bool          `toml:"disabled"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	RedisPrefix   string        `toml:"redis_prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Venue: Venue{
			Name:       DefaultVenueName,
			WhatsApp:   DefaultVenueWhatsApp,
			SSID:       DefaultSSID,
			Passphrase: DefaultPassphrase,
		},
		Copy: scene.DefaultCopy(),
		Render: Render{
			Backend: DefaultBackend,
			Style:   string(DefaultStyle),
			Timeout: DefaultTimeout,
		},
		Cache: Cache{
			TTL:         DefaultCacheTTL,
			RedisPrefix: DefaultRedisPrefix,
		},
	}
}

// Load reads path over the defaults. An empty path means [DefaultPath],
// which may be absent; an explicit path must exist. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values. It returns an INVALID_CONFIG error.
func (c Config) Validate() error {
	if !sink.Valid(c.Render.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "render.backend %q must be one of %v", c.Render.Backend, sink.Names())
	}
	if _, err := styles.ParsePreset(c.Render.Style); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.style")
	}
	if c.Render.QRSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.qr_size must not be negative")
	}
	if c.Render.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.timeout must be positive")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Venue.Passphrase == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "venue.passphrase is required")
	}
	if c.Venue.WhatsApp != "" {
		if err := errors.ValidatePlaceholder("venue.whatsapp", c.Venue.WhatsApp, payload.RoomPlaceholder); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "venue.whatsapp")
		}
	}
	return nil
}

// Preset returns the parsed render style. Call after Validate.
func (c Config) Preset() styles.Preset {
	p, _ := styles.ParsePreset(c.Render.Style)
	return p
}

// ApplyTo fills the venue fields p leaves empty.
func (v Venue) ApplyTo(p *guest.Profile) {
	if p.VenueName == "" {
		p.VenueName = v.Name
	}
	if p.VenueWhatsApp == "" {
		p.VenueWhatsApp = v.WhatsApp
	}
	if p.SSID == "" {
		p.SSID = v.SSID
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/welcomescreen/config.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the directory for the file cache: c.Cache.Dir when set,
// otherwise $XDG_CACHE_HOME/welcomescreen or ~/.cache/welcomescreen.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
