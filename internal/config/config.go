package config

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/wxalerts/internal/alert"
	"github.com/jacoelho/wxalerts/internal/area"
	"github.com/jacoelho/wxalerts/internal/exit"
	"github.com/jacoelho/wxalerts/internal/fetch"
	"github.com/jacoelho/wxalerts/internal/httpclient"
	"github.com/jacoelho/wxalerts/internal/logging"
	"github.com/jacoelho/wxalerts/internal/render"
)

const (
	EnvUserAgent = "WXALERTS_USER_AGENT"
	EnvRedisURL  = "WXALERTS_REDIS_URL"

	DefaultCacheTTL = 30 * time.Second
)

var (
	ErrNoArguments     = errors.New("no arguments provided")
	ErrNoAreas         = errors.New("no area codes specified")
	ErrUnknownField    = errors.New("unknown alert field")
	ErrInvalidInterval = errors.New("interval cannot be negative")
	ErrInvalidTimeout  = errors.New("timeout must be positive")
	ErrInvalidRate     = errors.New("rate limit cannot be negative")
	ErrInvalidCacheTTL = errors.New("cache TTL cannot be negative")
)

// Config represents the complete configuration for the wxalerts tool.
type Config struct {
	Areas      []string
	ConfigFile string

	// API access
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	Retries    int
	RateLimit  float64 // Requests per second (0 = unlimited)
	Insecure   bool
	CACertFile string

	// Output
	Format    string
	Fields    []string
	Heading   bool
	Color     bool
	Icons     bool
	LocalTime bool
	TimeZone  string

	// Polling
	Repeat   int // Additional iterations after first run (negative = infinite)
	Interval time.Duration

	// Diagnostics
	Debug       bool
	LogFormat   string
	Verify      bool
	MetricsAddr string

	// Caching
	CacheTTL time.Duration
	RedisURL string
}

// File is the YAML configuration file layout. Command line flags take precedence
// over its values. Scalars are pointers so an explicit zero still applies.
type File struct {
	Areas       []string       `yaml:"areas"`
	BaseURL     *string        `yaml:"base_url"`
	UserAgent   *string        `yaml:"user_agent"`
	Timeout     *time.Duration `yaml:"timeout"`
	Retries     *int           `yaml:"retries"`
	RateLimit   *float64       `yaml:"rate_limit"`
	Insecure    *bool          `yaml:"insecure"`
	CACertFile  *string        `yaml:"cacert"`
	Format      *string        `yaml:"format"`
	Fields      []string       `yaml:"fields"`
	Heading     *bool          `yaml:"heading"`
	Color       *bool          `yaml:"color"`
	Icons       *bool          `yaml:"icons"`
	LocalTime   *bool          `yaml:"local_time"`
	TimeZone    *string        `yaml:"tz"`
	Repeat      *int           `yaml:"repeat"`
	Interval    *time.Duration `yaml:"interval"`
	Debug       *bool          `yaml:"debug"`
	LogFormat   *string        `yaml:"log_format"`
	Verify      *bool          `yaml:"verify"`
	MetricsAddr *string        `yaml:"metrics_addr"`
	CacheTTL    *time.Duration `yaml:"cache_ttl"`
	RedisURL    *string        `yaml:"redis_url"`
}

// LoadFile reads and strictly decodes a YAML configuration file.
func LoadFile(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var file File
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	return &file, nil
}

// apply copies file values into c for every setting not given on the command line.
func (f *File) apply(c *Config, set map[string]bool) {
	if len(c.Areas) == 0 {
		c.Areas = slices.Clone(f.Areas)
	}
	if !set["fields"] && len(f.Fields) > 0 {
		c.Fields = slices.Clone(f.Fields)
	}

	override(&c.BaseURL, f.BaseURL, set["base-url"])
	override(&c.UserAgent, f.UserAgent, set["user-agent"])
	override(&c.Timeout, f.Timeout, set["timeout"])
	override(&c.Retries, f.Retries, set["retries"])
	override(&c.RateLimit, f.RateLimit, set["rate-limit"])
	override(&c.Insecure, f.Insecure, set["insecure"])
	override(&c.CACertFile, f.CACertFile, set["cacert"])
	override(&c.Format, f.Format, set["format"])
	override(&c.Heading, f.Heading, set["heading"])
	override(&c.Color, f.Color, set["color"])
	override(&c.Icons, f.Icons, set["icons"])
	override(&c.LocalTime, f.LocalTime, set["local-time"])
	override(&c.TimeZone, f.TimeZone, set["tz"])
	override(&c.Repeat, f.Repeat, set["repeat"])
	override(&c.Interval, f.Interval, set["interval"])
	override(&c.Debug, f.Debug, set["debug"])
	override(&c.LogFormat, f.LogFormat, set["log-format"])
	override(&c.Verify, f.Verify, set["verify"])
	override(&c.MetricsAddr, f.MetricsAddr, set["metrics-addr"])
	override(&c.CacheTTL, f.CacheTTL, set["cache-ttl"])
	override(&c.RedisURL, f.RedisURL, set["redis-url"])
}

// override sets dst from a value present in the file unless the flag was given.
func override[T any](dst *T, value *T, setOnCommandLine bool) {
	if !setOnCommandLine && value != nil {
		*dst = *value
	}
}

// TLSConfig returns a TLS configuration based on the config settings.
func (c *Config) TLSConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: c.Insecure,
	}

	if c.CACertFile != "" {
		caCertPool, err := x509.SystemCertPool()
		if err != nil {
			caCertPool = x509.NewCertPool()
		}

		caCert, err := os.ReadFile(c.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate file %s: %w", c.CACertFile, err)
		}

		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate from %s", c.CACertFile)
		}

		tlsConfig.RootCAs = caCertPool
	}

	return tlsConfig, nil
}

// Location returns the zone timestamps are displayed in, or nil to keep them as sent.
func (c *Config) Location() (*time.Location, error) {
	switch {
	case c.TimeZone != "":
		loc, err := time.LoadLocation(c.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %s: %w", c.TimeZone, err)
		}
		return loc, nil
	case c.LocalTime:
		return time.Local, nil
	default:
		return nil, nil
	}
}

// Validate normalizes area codes and returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if len(c.Areas) == 0 {
		return ErrNoAreas
	}

	for i, code := range c.Areas {
		normalized, err := area.Normalize(code)
		if err != nil {
			return err
		}
		c.Areas[i] = normalized
	}

	for _, field := range c.Fields {
		if !alert.IsKnownField(field) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	if !slices.Contains(render.Formats(), c.Format) {
		return fmt.Errorf("%w: %s", render.ErrUnknownFormat, c.Format)
	}

	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("%w: %s", logging.ErrUnknownFormat, c.LogFormat)
	}

	if _, err := area.URL(c.BaseURL, c.Areas[0]); err != nil {
		return err
	}

	switch {
	case c.Timeout <= 0:
		return ErrInvalidTimeout
	case c.Interval < 0:
		return ErrInvalidInterval
	case c.RateLimit < 0:
		return ErrInvalidRate
	case c.CacheTTL < 0:
		return ErrInvalidCacheTTL
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.CACertFile != "" {
		if _, err := os.Stat(c.CACertFile); err != nil {
			return fmt.Errorf("CA certificate file %s not found: %w", c.CACertFile, err)
		}
	}

	return nil
}

// listFlag implements flag.Value for comma separated lists.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		configFile  = fs.String("config", "", "Path to a YAML configuration file")
		baseURL     = fs.String("base-url", area.DefaultBaseURL, "Alerts API base URL")
		userAgent   = fs.String("user-agent", envOr(EnvUserAgent, fetch.DefaultUserAgent), "User-Agent header sent to the API")
		timeout     = fs.Duration("timeout", httpclient.DefaultTimeout, "HTTP request timeout")
		retries     = fs.Int("retries", httpclient.DefaultRetryMax, "Retries on connection errors and 5xx responses (0 or negative disables)")
		rateLimit   = fs.Float64("rate-limit", 0, "Rate limit in requests per second (0 for unlimited)")
		insecure    = fs.Bool("insecure", false, "Skip TLS certificate verification")
		caCertFile  = fs.String("cacert", "", "Path to CA certificate file for TLS verification")
		format      = fs.String("format", render.FormatText, "Output format: text, json or yaml")
		heading     = fs.Bool("heading", false, "Print the area name before its alerts")
		color       = fs.Bool("color", false, "Color headlines by severity")
		icons       = fs.Bool("icons", false, "Prefix headlines with an event icon")
		localTime   = fs.Bool("local-time", false, "Show timestamps in the local time zone")
		timeZone    = fs.String("tz", "", "Show timestamps in the named time zone")
		repeat      = fs.Int("repeat", 0, "Number of additional polls after the first one (negative for infinite loop)")
		interval    = fs.Duration("interval", time.Minute, "Delay between polls")
		debug       = fs.Bool("debug", false, "Enable debug logging and print a polling summary")
		logFormat   = fs.String("log-format", logging.FormatText, "Log format: text or json")
		verify      = fs.Bool("verify", false, "Cross-check extracted fields against a full JSON decode")
		metricsAddr = fs.String("metrics-addr", "", "Serve Prometheus metrics on this address")
		cacheTTL    = fs.Duration("cache-ttl", DefaultCacheTTL, "How long fetched documents are reused (0 disables caching)")
		redisURL    = fs.String("redis-url", os.Getenv(EnvRedisURL), "Cache documents in redis instead of memory")
		fields      listFlag
	)

	fs.Var(&fields, "fields", "Comma separated alert fields to extract (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	config := &Config{
		Areas:       fs.Args(),
		ConfigFile:  *configFile,
		BaseURL:     *baseURL,
		UserAgent:   *userAgent,
		Timeout:     *timeout,
		Retries:     *retries,
		RateLimit:   *rateLimit,
		Insecure:    *insecure,
		CACertFile:  *caCertFile,
		Format:      *format,
		Fields:      fields,
		Heading:     *heading,
		Color:       *color,
		Icons:       *icons,
		LocalTime:   *localTime,
		TimeZone:    *timeZone,
		Repeat:      *repeat,
		Interval:    *interval,
		Debug:       *debug,
		LogFormat:   *logFormat,
		Verify:      *verify,
		MetricsAddr: *metricsAddr,
		CacheTTL:    *cacheTTL,
		RedisURL:    *redisURL,
	}

	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			return nil, exit.Errorf("Error: %v", err)
		}

		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		file.apply(config, set)
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// CacheEnabled reports whether fetched documents are cached at all.
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `wxalerts - active weather alerts from the National Weather Service

Usage: wxalerts [options] <area> [area] ...

Areas are two letter state, territory or marine area codes (TX, PR, GM).

Options:
  --config FILE           YAML configuration file; flags override its values
  --base-url URL          Alerts API base URL (default: https://api.weather.gov)
  --user-agent VALUE      User-Agent header (env: WXALERTS_USER_AGENT)
  --timeout DURATION      HTTP request timeout (default: 5s)
  --retries N             Retries on connection errors and 5xx responses, 0 or negative disables (default: 3)
  --rate-limit N          Rate limit in requests per second (0 for unlimited)
  --insecure              Skip TLS certificate verification
  --cacert FILE           Path to CA certificate file for TLS verification
  --format FORMAT         Output format: text, json or yaml (default: text)
  --fields LIST           Comma separated alert fields to extract
  --heading               Print the area name before its alerts
  --color                 Color headlines by severity
  --icons                 Prefix headlines with an event icon
  --local-time            Show timestamps in the local time zone
  --tz ZONE               Show timestamps in the named time zone
  --repeat N              Number of additional polls after the first (negative for infinite)
  --interval DURATION     Delay between polls (default: 1m)
  --debug                 Enable debug logging and print a polling summary
  --log-format FORMAT     Log format: text or json (default: text)
  --verify                Cross-check extracted fields against a full JSON decode
  --metrics-addr ADDR     Serve Prometheus metrics on ADDR
  --cache-ttl DURATION    Reuse fetched documents for this long (default: 30s, 0 disables)
  --redis-url URL         Cache documents in redis (env: WXALERTS_REDIS_URL)
  -h, --help              Show this help message

Examples:
  wxalerts TX                              # Active alerts for Texas
  wxalerts --format json TX OK             # Two areas as JSON documents
  wxalerts --repeat -1 --interval 5m GM    # Poll the Gulf of Mexico until interrupted
  wxalerts --color --icons --local-time TX # Decorated output in local time`
}
