package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"procurement/internal/adapters/out/storage"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/jobs"
	"procurement/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PROCUREMENT_HTTP_PORT.
const EnvPrefix = "PROCUREMENT"

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogSQL          bool          `mapstructure:"log_sql"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CurrencyConfig holds the primary units per secondary unit as a decimal
// string.
type CurrencyConfig struct {
	Rate string `mapstructure:"rate"`
}

// JobsConfig holds cron specs. An empty spec disables the job.
type JobsConfig struct {
	BacklogReportSpec string `mapstructure:"backlog_report_spec"`
}

// legacyEnv keeps the unprefixed variable names of older deployments working.
var legacyEnv = map[string]string{
	"http.port":         "HTTP_PORT",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"database.sslmode":  "DB_SSLMODE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", storage.DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "procurement")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "procurement.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_sql", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("currency.rate", fmt.Sprint(kernel.DefaultRate))

	v.SetDefault("jobs.backlog_report_spec", jobs.DefaultBacklogReportSpec)
}

// LoadConfig reads .env files into the environment, then resolves the
// configuration from defaults, the optional YAML file at path and
// PROCUREMENT_* variables, in increasing priority. Missing .env files are
// ignored; a missing config file is an error only when path is not empty.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	switch c.Database.Driver {
	case storage.DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("database.host and database.name are required for postgres"))
		}
	case storage.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not one of postgres, sqlite", c.Database.Driver))
	}
	if _, err := c.Converter(); err != nil {
		errs = append(errs, fmt.Errorf("currency.rate: %w", err))
	}
	return errors.Join(errs...)
}

// Converter builds the currency converter from currency.rate.
func (c Config) Converter() (kernel.Converter, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.Currency.Rate))
	if err != nil {
		return kernel.Converter{}, err
	}
	return kernel.NewConverter(rate)
}

func (c Config) Storage() storage.Config {
	return storage.Config{
		Driver:          c.Database.Driver,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		User:            c.Database.User,
		Password:        c.Database.Password,
		Name:            c.Database.Name,
		SSLMode:         c.Database.SSLMode,
		SQLitePath:      c.Database.SQLitePath,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		LogSQL:          c.Database.LogSQL,
	}
}

func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format, Output: c.Log.Output}
}
