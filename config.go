package masterweb

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

// Theme is the colour scheme requested from the community widget.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

func (t *Theme) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseTheme(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Logo is the branding block shown in the page chrome.
type Logo struct {
	Text      string `yaml:"text" json:"text"`
	ImagePath string `yaml:"image" json:"imagePath"`
	LinkPath  string `yaml:"link" json:"linkPath"`
}

// CommunityWidget describes the external chat-community widget.
type CommunityWidget struct {
	GuildID       string `yaml:"guildId" json:"guildId"`
	ImageURL      string `yaml:"image" json:"imageUrl"`
	SmallImageURL string `yaml:"smallImage" json:"smallImageUrl"`
	InviteURL     string `yaml:"invite" json:"inviteUrl"`
	Theme         Theme  `yaml:"theme" json:"theme"`
	Text          string `yaml:"text" json:"text"`
}

// SiteConfig holds the site branding. It contains only value fields, so a copy
// never shares state with the value it was copied from.
type SiteConfig struct {
	Title           string          `yaml:"title" json:"title"`
	Logo            Logo            `yaml:"logo" json:"logo"`
	CommunityWidget CommunityWidget `yaml:"communityWidget" json:"communityWidget"`
}

// ParseSiteConfig decodes and validates a YAML site definition.
func ParseSiteConfig(data []byte) (SiteConfig, error) {
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode site config: %w", err)
	}
	if strings.TrimSpace(cfg.Title) == "" {
		return SiteConfig{}, fmt.Errorf("site config: title is required")
	}
	if cfg.CommunityWidget.Theme == "" {
		cfg.CommunityWidget.Theme = ThemeDark
	}
	return cfg, nil
}

// DefaultSiteConfig returns the branding compiled into the binary.
func DefaultSiteConfig() (SiteConfig, error) {
	return ParseSiteConfig(siteYAML)
}

// ServerConfig holds runtime options read from the environment.
type ServerConfig struct {
	Addr            string `env:"MASTERWEB_ADDR"`           // Listen address (default ":8080")
	URL             string `env:"MASTERWEB_URL"`            // Canonical URL (default "http://localhost:8080")
	StaticDir       string `env:"MASTERWEB_STATIC_DIR"`     // Overrides the embedded assets when set
	LogLevel        int8   `env:"MASTERWEB_LOG_LEVEL"`      // zap level, -1 debug .. 2 error
	MaxAPIPerMinute int    `env:"MASTERWEB_API_PER_MINUTE"` // Per-IP API budget (default 15)
	Hostname        string `env:"MASTERWEB_HOSTNAME"`       // Master server name shown by /api/v1/master/info
	MOTD            string `env:"MASTERWEB_MOTD"`           // Message of the day
	MasterID        uint16 `env:"MASTERWEB_MASTER_ID"`      // Master server ID (default 99)
	Version         string // Set by the CLI from build flags
}

// LoadServerConfig reads ServerConfig from the environment and applies defaults.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8080"
	}
	if c.MaxAPIPerMinute <= 0 {
		c.MaxAPIPerMinute = 15
	}
	if c.MasterID == 0 {
		c.MasterID = 99
	}
	if c.Version == "" {
		c.Version = "dev"
	}
}
