package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v9"
	"github.com/charmbracelet/ligas/internal/league"
	"github.com/charmbracelet/ligas/internal/web"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultAPIKeyEnv = "GEMINI_API_KEY"

// APIs.
const (
	apiGemini = "gemini"
	apiGoogle = "google"
)

var help = map[string]string{
	"api":            "Gemini backend to use (gemini: official SDK, google: REST).",
	"base-url":       "Override the Gemini API base URL.",
	"api-key-env":    "Environment variable holding the Gemini API key.",
	"model":          "Gemini model to generate leagues with.",
	"temp":           "Temperature (randomness) of results, from 0.0 to 2.0.",
	"max-tokens":     "Maximum number of tokens in response.",
	"timeout":        "Timeout for each generation (0 disables it).",
	"raw":            "Render output as raw text when connected to a TTY.",
	"quiet":          "Quiet mode (hide the spinner while loading).",
	"copy":           "Copy the generated league to the clipboard.",
	"log-level":      "Log level (debug, info, warn, error).",
	"addr":           "Address the web server listens on.",
	"rate-limit":     "Generations per second allowed by the web server (0 disables it).",
	"rate-burst":     "Burst of generations allowed above the rate limit.",
	"mask":           "Mask the API key when printing it.",
	"help":           "Show help and exit.",
	"version":        "Show version and exit.",
	"settings":       "Open settings in your $EDITOR.",
	"reset-settings": "Backup your old settings file and reset everything to the defaults.",
	"dirs":           "Print the directories in which ligas stores its data.",
}

// Config holds the main configuration and is mapped to the YAML settings file.
type Config struct {
	API         string        `yaml:"api" env:"API"`
	BaseURL     string        `yaml:"base-url" env:"BASE_URL"`
	APIKeyEnv   string        `yaml:"api-key-env" env:"API_KEY_ENV"`
	Model       string        `yaml:"model" env:"MODEL"`
	Temperature float64       `yaml:"temp" env:"TEMP"`
	MaxTokens   int64         `yaml:"max-tokens" env:"MAX_TOKENS"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT"`
	Raw         bool          `yaml:"raw" env:"RAW"`
	Quiet       bool          `yaml:"quiet" env:"QUIET"`
	LogLevel    string        `yaml:"log-level" env:"LOG_LEVEL"`
	Addr        string        `yaml:"addr" env:"ADDR"`
	RateLimit   float64       `yaml:"rate-limit" env:"RATE_LIMIT"`
	RateBurst   int           `yaml:"rate-burst" env:"RATE_BURST"`

	// APIKey is nil when the key variable is not set at all.
	APIKey *string `yaml:"-"`

	Copy          bool   `yaml:"-"`
	Mask          bool   `yaml:"-"`
	Prefix        string `yaml:"-"`
	Settings      bool   `yaml:"-"`
	ResetSettings bool   `yaml:"-"`
	Dirs          bool   `yaml:"-"`
	SettingsPath  string `yaml:"-"`
}

func defaultConfig() Config {
	def := league.DefaultConfig()
	return Config{
		API:         apiGemini,
		APIKeyEnv:   defaultAPIKeyEnv,
		Model:       def.Model,
		Temperature: def.Temperature,
		MaxTokens:   def.MaxTokens,
		LogLevel:    "info",
		Addr:        web.DefaultAddr,
	}
}

// leagueConfig returns the generation parameters.
func (c Config) leagueConfig() league.Config {
	return league.Config{
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
	}
}

// webConfig returns the web server configuration.
func (c Config) webConfig() web.Config {
	return web.Config{
		Addr:      c.Addr,
		RateLimit: c.RateLimit,
		RateBurst: c.RateBurst,
	}
}

func (c Config) apiKey() string {
	if c.APIKey == nil {
		return ""
	}
	return *c.APIKey
}

func ensureConfig() (Config, error) {
	sp, err := xdg.ConfigFile(filepath.Join("ligas", "ligas.yml"))
	if err != nil {
		return defaultConfig(), ligasError{err, "Could not find settings path."}
	}
	return loadConfig(sp, ".env")
}

// loadConfig loads the dotenv file, then the settings file at path
// (creating it from the template when missing), then the LIGAS_ prefixed
// environment.
func loadConfig(path, dotenv string) (Config, error) {
	c := defaultConfig()
	c.SettingsPath = path

	if err := loadDotenv(dotenv); err != nil {
		return c, ligasError{err, "Could not load the .env file."}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil { //nolint:mnd
		return c, ligasError{err, "Could not create settings directory."}
	}
	if err := writeConfigFile(path); err != nil {
		return c, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return c, ligasError{err, "Could not read settings file."}
	}
	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, ligasError{err, "Could not parse settings file."}
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: "LIGAS_"}); err != nil {
		return c, ligasError{err, "Could not parse environment into settings file."}
	}

	if c.APIKeyEnv == "" {
		c.APIKeyEnv = defaultAPIKeyEnv
	}
	if key, ok := os.LookupEnv(c.APIKeyEnv); ok {
		c.APIKey = &key
	}

	return c, nil
}

// loadDotenv applies the dotenv file on top of the environment, when it
// exists.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Overload(path); err != nil {
		return fmt.Errorf("dotenv: %w", err)
	}
	return nil
}

func writeConfigFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return createConfigFile(path)
	} else if err != nil {
		return ligasError{err, "Could not stat path."}
	}
	return nil
}

func createConfigFile(path string) error {
	tmpl := template.Must(template.New("config").Parse(configTemplate))

	f, err := os.Create(path)
	if err != nil {
		return ligasError{err, "Could not create configuration file."}
	}
	defer func() { _ = f.Close() }()

	m := struct {
		Config Config
		Help   map[string]string
	}{
		Config: defaultConfig(),
		Help:   help,
	}
	if err := tmpl.Execute(f, m); err != nil {
		return ligasError{err, "Could not render template."}
	}
	return nil
}

// resetSettings backs up the current settings file and writes a fresh one.
func resetSettings(path string) (string, error) {
	backup := fmt.Sprintf("%s.%d.bak", path, time.Now().Unix())
	if err := os.Rename(path, backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", ligasError{err, "Could not backup settings file."}
	}
	if err := createConfigFile(path); err != nil {
		return "", err
	}
	return backup, nil
}
