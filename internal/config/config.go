package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/source"
)

// Config represents the application configuration
type Config struct {
	Title         string        `toml:"title"`
	FeedURL       string        `toml:"feed_url"`
	Projects      string        `toml:"projects"`
	PinIntro      bool          `toml:"pin_intro"`
	RevealDelayMS int           `toml:"reveal_delay_ms"`
	FetchTimeout  time.Duration `toml:"fetch_timeout"`
	Listen        string        `toml:"listen"`
	LogLevel      string        `toml:"log_level"`
	Intro         Intro         `toml:"intro"`
	Social        []SocialLink  `toml:"social"`
}

// Intro is the lead card's content
type Intro struct {
	Title        string `toml:"title"`
	Description  string `toml:"description"`
	AccentColor  string `toml:"color"`
	AccentColor2 string `toml:"color2"`
}

// SocialLink is one entry of the fixed social row
type SocialLink struct {
	ID           string `toml:"id"`
	Title        string `toml:"title"`
	Icon         string `toml:"icon"`
	Link         string `toml:"link"`
	AccentColor  string `toml:"color"`
	AccentColor2 string `toml:"color2"`
}

var configPathOverride string

// SetConfigFilePath makes every later load and save use path
func SetConfigFilePath(path string) {
	configPathOverride = path
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the directory for cached thumbnails
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "shufflegrid")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	return filepath.Join(GetXDGConfigHome(), "shufflegrid", "config.toml")
}

// LoadConfig loads the config file, writing the defaults on first use
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	config.Social = nil
	md, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	if !md.IsDefined("social") {
		config.Social = Default().Social
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// RevealStep returns the reveal stagger as a duration
func (c *Config) RevealStep() time.Duration {
	if c.RevealDelayMS <= 0 {
		return 150 * time.Millisecond
	}
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}

// IntroCard returns the configured intro as a card
func (c *Config) IntroCard() card.Card {
	return card.Card{
		ID:           card.IntroID,
		Kind:         card.KindIntro,
		Title:        c.Intro.Title,
		Description:  c.Intro.Description,
		AccentColor:  c.Intro.AccentColor,
		AccentColor2: c.Intro.AccentColor2,
	}
}

// SocialCards returns the social row as cards, in configured order
func (c *Config) SocialCards() []card.Card {
	cards := make([]card.Card, 0, len(c.Social))
	for _, s := range c.Social {
		cards = append(cards, card.Card{
			ID:           s.ID,
			Kind:         card.KindSocial,
			Title:        s.Title,
			Icon:         s.Icon,
			IconIsGlyph:  card.LooksLikeGlyph(s.Icon),
			Link:         s.Link,
			AccentColor:  s.AccentColor,
			AccentColor2: s.AccentColor2,
		})
	}
	return cards
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Title:         "Drew",
		FeedURL:       source.DefaultFeedURL,
		Projects:      "./projects.json",
		RevealDelayMS: 150,
		Listen:        "127.0.0.1:8080",
		LogLevel:      "info",
		Intro: Intro{
			Title:        "Hi, I'm Drew 👋",
			Description:  "I spend my time building tools, marketing, and seeing what works in tech.",
			AccentColor:  "#6366f1",
			AccentColor2: "#8b5cf6",
		},
		Social: []SocialLink{
			{ID: "social-github", Title: "GitHub", Icon: "fa-brands fa-github", Link: "https://github.com/adnjoo", AccentColor: "#1f2937", AccentColor2: "#111827"},
			{ID: "social-instagram", Title: "Instagram", Icon: "fa-brands fa-instagram", Link: "https://instagram.com/adnjoo", AccentColor: "#ec4899", AccentColor2: "#db2777"},
			{ID: "social-linkedin", Title: "LinkedIn", Icon: "fa-brands fa-linkedin", Link: "https://linkedin.com/in/adnjoo", AccentColor: "#2563eb", AccentColor2: "#1d4ed8"},
			{ID: "social-twitter", Title: "Twitter", Icon: "fa-brands fa-twitter", Link: "https://x.com/adnjoo", AccentColor: "#000000", AccentColor2: "#1a1a1a"},
			{ID: "social-youtube", Title: "YouTube", Icon: "fa-brands fa-youtube", Link: "https://youtube.com/@drewnjoo", AccentColor: "#dc2626", AccentColor2: "#b91c1c"},
			{ID: "social-spotify", Title: "Spotify", Icon: "fa-brands fa-spotify", Link: "https://open.spotify.com/artist/1351GdPml5Zsm0X4YD3IX7", AccentColor: "#22c55e", AccentColor2: "#16a34a"},
			{ID: "social-soundcloud", Title: "SoundCloud", Icon: "fa-brands fa-soundcloud", Link: "https://soundcloud.com/adnjoo", AccentColor: "#f97316", AccentColor2: "#ea580c"},
		},
	}
}
