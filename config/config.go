package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "QFORMS_"

type Config struct {
	Addr            string
	DBUrl           string
	Debug           bool
	LogFormat       string
	CORSOrigins     []string
	MaxOpenConns    int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Flags holds the raw command line values. Defaults come from the
// environment, so a flag always wins over QFORMS_* variables.
type Flags struct {
	Host            string
	Port            uint
	DBUrl           string
	Debug           bool
	LogFormat       string
	CORSOrigins     []string
	MaxOpenConns    int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// LoadEnv loads variables from the given .env files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// NewFlags returns the defaults, overridden by the environment.
func NewFlags() (*Flags, error) {
	f := &Flags{
		Host:            "0.0.0.0",
		Port:            3000,
		DBUrl:           "data/forms.db",
		LogFormat:       "text",
		CORSOrigins:     []string{"*"},
		MaxOpenConns:    20,
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 10 * time.Second,
	}

	var err error
	if v, ok := env("HOST"); ok {
		f.Host = v
	}
	if v, ok := env("PORT"); ok {
		var port uint64
		if port, err = strconv.ParseUint(v, 10, 16); err != nil {
			return nil, fmt.Errorf("invalid %sPORT: %w", EnvPrefix, err)
		}
		f.Port = uint(port)
	}
	if v, ok := env("DB_URL"); ok {
		f.DBUrl = v
	}
	if v, ok := env("DEBUG"); ok {
		if f.Debug, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid %sDEBUG: %w", EnvPrefix, err)
		}
	}
	if v, ok := env("LOG_FORMAT"); ok {
		f.LogFormat = v
	}
	if v, ok := env("CORS_ORIGINS"); ok {
		f.CORSOrigins = splitList(v)
	}
	if v, ok := env("MAX_OPEN_CONNS"); ok {
		if f.MaxOpenConns, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid %sMAX_OPEN_CONNS: %w", EnvPrefix, err)
		}
	}
	if v, ok := env("MAX_BODY_BYTES"); ok {
		if f.MaxBodyBytes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid %sMAX_BODY_BYTES: %w", EnvPrefix, err)
		}
	}
	if v, ok := env("SHUTDOWN_TIMEOUT"); ok {
		if f.ShutdownTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid %sSHUTDOWN_TIMEOUT: %w", EnvPrefix, err)
		}
	}
	return f, nil
}

// Register binds the flags to fs using the current values as defaults.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.Host, "host", f.Host, "listen host name")
	fs.UintVar(&f.Port, "port", f.Port, "listen port number")
	fs.StringVar(&f.DBUrl, "db-url", f.DBUrl, "path to SQLite3 DB file")
	fs.BoolVar(&f.Debug, "debug", f.Debug, "log at DEBUG level")
	fs.StringVar(&f.LogFormat, "log-format", f.LogFormat, "log format: text or json")
	fs.StringSliceVar(&f.CORSOrigins, "cors-origin", f.CORSOrigins, "allowed CORS origins")
	fs.IntVar(&f.MaxOpenConns, "max-open-conns", f.MaxOpenConns, "maximum open database connections")
	fs.Int64Var(&f.MaxBodyBytes, "max-body-bytes", f.MaxBodyBytes, "maximum request body size")
	fs.DurationVar(&f.ShutdownTimeout, "shutdown-timeout", f.ShutdownTimeout, "graceful shutdown timeout")
}

// Config validates the flags and builds the final configuration.
func (f *Flags) Config() (cfg Config, err error) {
	if f.Port == 0 || f.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", f.Port)
	}
	if strings.TrimSpace(f.DBUrl) == "" {
		return Config{}, errors.New("missing parameter --db-url")
	}
	format := strings.ToLower(f.LogFormat)
	if format != "text" && format != "json" {
		return Config{}, fmt.Errorf("invalid log format %q", f.LogFormat)
	}
	if f.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("invalid max body size %d", f.MaxBodyBytes)
	}

	cfg = Config{
		Addr:            net.JoinHostPort(f.Host, strconv.Itoa(int(f.Port))),
		DBUrl:           f.DBUrl,
		Debug:           f.Debug,
		LogFormat:       format,
		CORSOrigins:     f.CORSOrigins,
		MaxOpenConns:    f.MaxOpenConns,
		MaxBodyBytes:    f.MaxBodyBytes,
		ShutdownTimeout: f.ShutdownTimeout,
	}
	return cfg, nil
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func env(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
