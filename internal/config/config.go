package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable the shell reads
	EnvPrefix = "TIKTOK"

	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
	EnvironmentTest        = "test"
)

// Config holds the shell's settings. The window surface and remote target
// are fixed; only the ambient block can be overridden from the environment.
type Config struct {
	// Identity
	AppID string `json:"appId" yaml:"appId"` // Application identity token used by the OS shell for grouping
	Title string `json:"title" yaml:"title"` // Window title

	// Window surface
	Width            int    `json:"width" yaml:"width"`                       // Initial window width
	Height           int    `json:"height" yaml:"height"`                     // Initial window height
	SplashPath       string `json:"splashPath" yaml:"splashPath"`             // Splash document, relative to the asset root
	BackgroundColour string `json:"backgroundColour" yaml:"backgroundColour"` // #RRGGBB painted before content loads
	StartMaximised   bool   `json:"startMaximised" yaml:"startMaximised"`     // Maximise right after creation
	HideMenu         bool   `json:"hideMenu" yaml:"hideMenu"`                 // Hide and remove the menu bar on Windows and Linux

	// Navigation
	RemoteURL       string        `json:"remoteUrl" yaml:"remoteUrl"`             // Site the window navigates to after the splash
	UserAgent       string        `json:"userAgent" yaml:"userAgent"`             // Request identity for the remote site
	NavigationDelay time.Duration `json:"navigationDelay" yaml:"navigationDelay"` // How long the splash stays up
	SearchURL       string        `json:"searchUrl" yaml:"searchUrl"`             // Prefix of the selection search query URL

	// Ambient
	Environment      string        `json:"environment" yaml:"environment"`           // production, development or test
	LogLevel         string        `json:"logLevel" yaml:"logLevel"`                 // debug, info, warn, error
	LogFormat        string        `json:"logFormat" yaml:"logFormat"`               // json or console
	Debug            bool          `json:"debug" yaml:"debug"`                       // Enables the web inspector
	ProbeEnabled     bool          `json:"probeEnabled" yaml:"probeEnabled"`         // Diagnostic reachability probe, opt-in outside development
	ProbeTimeout     time.Duration `json:"probeTimeout" yaml:"probeTimeout"`         // Per-request probe timeout
	SingleInstanceID string        `json:"singleInstanceId" yaml:"singleInstanceId"` // Lock id; a second launch activates the running shell
}

// DefaultConfig returns the production configuration
func DefaultConfig() *Config {
	return &Config{
		AppID: "TikTok",
		Title: "TikTok",

		Width:            1360,
		Height:           765,
		SplashPath:       "index.html",
		BackgroundColour: "#2C2C2C",
		StartMaximised:   true,
		HideMenu:         true,

		RemoteURL: "https://www.tiktok.com/",
		// The trailing apostrophe is part of the identity the site has always seen.
		UserAgent:       "Mozilla/5.0 (TikTok-Desktop) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36'",
		NavigationDelay: 3000 * time.Millisecond,
		SearchURL:       "https://google.com/search?q=",

		Environment:      EnvironmentProduction,
		LogLevel:         "info",
		LogFormat:        "json",
		Debug:            false,
		ProbeEnabled:     false,
		ProbeTimeout:     10 * time.Second,
		SingleInstanceID: "com.tiktok.desktop.shell",
	}
}

// DevelopmentConfig returns a configuration for local runs
func DevelopmentConfig() *Config {
	config := DefaultConfig()
	config.Environment = EnvironmentDevelopment
	config.LogLevel = "debug"
	config.LogFormat = "console"
	config.Debug = true
	config.ProbeEnabled = true
	return config
}

// TestConfig returns a configuration for tests: no network, quiet logs
func TestConfig() *Config {
	config := DefaultConfig()
	config.Environment = EnvironmentTest
	config.LogLevel = "error"
	config.ProbeEnabled = false
	config.ProbeTimeout = time.Second
	return config
}

// ConfigForEnvironment returns the configuration preset for env
func ConfigForEnvironment(env string) *Config {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case EnvironmentDevelopment, "dev":
		return DevelopmentConfig()
	case EnvironmentTest:
		return TestConfig()
	default:
		return DefaultConfig()
	}
}

// Load builds the configuration for the environment named by
// TIKTOK_ENVIRONMENT and applies the ambient overrides
// TIKTOK_LOG_LEVEL, TIKTOK_LOG_FORMAT, TIKTOK_DEBUG and TIKTOK_PROBE.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", EnvironmentProduction)
	config := ConfigForEnvironment(v.GetString("environment"))

	v.SetDefault("log_level", config.LogLevel)
	v.SetDefault("log_format", config.LogFormat)
	v.SetDefault("debug", config.Debug)
	v.SetDefault("probe", config.ProbeEnabled)

	config.LogLevel = strings.ToLower(v.GetString("log_level"))
	config.LogFormat = strings.ToLower(v.GetString("log_format"))
	config.Debug = v.GetBool("debug")
	config.ProbeEnabled = v.GetBool("probe")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Validate checks the configuration for values the shell cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppID) == "" {
		return fmt.Errorf("appId cannot be empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, _, _, err := ParseHexColour(c.BackgroundColour); err != nil {
		return fmt.Errorf("invalid backgroundColour: %w", err)
	}

	u, err := url.Parse(c.RemoteURL)
	if err != nil {
		return fmt.Errorf("invalid remoteUrl: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" || u.Host == "" {
		return fmt.Errorf("remoteUrl must be an absolute http(s) URL, got %q", c.RemoteURL)
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("userAgent cannot be empty")
	}
	if c.NavigationDelay < 0 {
		return fmt.Errorf("navigationDelay cannot be negative, got %v", c.NavigationDelay)
	}
	if !strings.HasPrefix(c.SearchURL, "https://") && !strings.HasPrefix(c.SearchURL, "http://") {
		return fmt.Errorf("searchUrl must be an http(s) URL prefix, got %q", c.SearchURL)
	}

	switch c.Environment {
	case EnvironmentProduction, EnvironmentDevelopment, EnvironmentTest:
	default:
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logFormat: %s", c.LogFormat)
	}
	if c.ProbeEnabled && c.ProbeTimeout <= 0 {
		return fmt.Errorf("probeTimeout must be positive when the probe is enabled, got %v", c.ProbeTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// IsTest returns true if the environment is set to test
func (c *Config) IsTest() bool {
	return c.Environment == EnvironmentTest
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// BackgroundRGB returns the background colour components
func (c *Config) BackgroundRGB() (r, g, b uint8) {
	r, g, b, _ = ParseHexColour(c.BackgroundColour)
	return r, g, b
}

// ParseHexColour parses #RRGGBB (the leading # is optional)
func ParseHexColour(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("colour %q is not #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("colour %q is not #RRGGBB: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
