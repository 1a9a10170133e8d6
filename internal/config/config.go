package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Fixture sources.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

const envPrefix = "PLANT"

var (
	ErrInvalidSource = errors.New("invalid fixture source")
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	Fixture FixtureConfig `mapstructure:"fixture"`
	DB      DBConfig      `mapstructure:"db"`
	View    ViewConfig    `mapstructure:"view"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	WS      WSConfig      `mapstructure:"ws"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type FixtureConfig struct {
	Source  string        `mapstructure:"source"`
	Path    string        `mapstructure:"path"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DBConfig locates the SQLite fixture database. SeedFrom, when set, is a JSON
// fixture imported into the database if it holds no sites yet.
type DBConfig struct {
	Path     string `mapstructure:"path"`
	SeedFrom string `mapstructure:"seed_from"`
}

type ViewConfig struct {
	Locale string `mapstructure:"locale"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type WSConfig struct {
	MaxMessageBytes int64 `mapstructure:"max_message_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("fixture.source", SourceJSON)
	v.SetDefault("fixture.path", "data/sites.json")
	v.SetDefault("fixture.url", "")
	v.SetDefault("fixture.timeout", 10*time.Second)
	v.SetDefault("db.path", "plant_monitor.db")
	v.SetDefault("db.seed_from", "")
	v.SetDefault("view.locale", "fr-CA")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("ws.max_message_bytes", 4096)
}

// Load reads config.yml from the first of dirs that has one (default: configs
// and the working directory), then applies PLANT_* environment overrides such
// as PLANT_FIXTURE_SOURCE. A missing file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(dirs) == 0 {
		dirs = []string{"configs", "."}
	}
	for _, d := range dirs {
		v.AddConfigPath(d) // <dir>/config.yml
	}
	v.SetConfigName("config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Fixture.Source = strings.ToLower(strings.TrimSpace(cfg.Fixture.Source))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.Fixture.Source {
	case SourceJSON:
		if c.Fixture.Path == "" {
			bad("fixture.path is required for the %s source", SourceJSON)
		}
	case SourceHTTP:
		if c.Fixture.URL == "" {
			bad("fixture.url is required for the %s source", SourceHTTP)
		}
	case SourceSQLite:
		if c.DB.Path == "" {
			bad("db.path is required for the %s source", SourceSQLite)
		}
	default:
		errs = append(errs, fmt.Errorf("%w %q, expected one of: %s, %s, %s",
			ErrInvalidSource, c.Fixture.Source, SourceJSON, SourceSQLite, SourceHTTP))
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		bad("log.format %q, expected console or json", c.Log.Format)
	}
	if _, err := language.Parse(c.View.Locale); err != nil {
		bad("view.locale %q: %v", c.View.Locale, err)
	}
	if c.Fixture.Timeout <= 0 {
		bad("fixture.timeout must be positive")
	}
	if c.HTTP.ReadHeaderTimeout <= 0 || c.HTTP.WriteTimeout <= 0 || c.HTTP.IdleTimeout <= 0 {
		bad("http timeouts must be positive")
	}
	if c.WS.MaxMessageBytes <= 0 {
		bad("ws.max_message_bytes must be positive")
	}
	return errors.Join(errs...)
}

// Locale is the collation locale; Validate guarantees it parses.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.View.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}
