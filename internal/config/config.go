package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	reporterrors "mcra/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	// Run metadata stamped on every row
	Platform        string `yaml:"platform"`
	Version         string `yaml:"version"`
	PreviewFeatures string `yaml:"preview_features"`

	// Input and output
	ResultsDir string   `yaml:"results_dir"`
	CSVPath    string   `yaml:"csv"`
	Suites     []string `yaml:"suites"`

	// StrictLookup fails when more than one file matches a suite pattern
	StrictLookup bool `yaml:"strict_lookup"`

	// Extraction limits
	MaxLineLength      int `yaml:"max_line_length"`
	MaxErrorCandidates int `yaml:"max_error_candidates"`

	Logging  LoggingConfig  `yaml:"logging"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	MySQL    MySQLConfig    `yaml:"mysql"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// LoggingConfig selects the level, format and sink of the process logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives log output; empty means stderr
	File string `yaml:"file"`
}

// SnapshotConfig locates the stored last run
type SnapshotConfig struct {
	Dir  string `yaml:"dir"`
	File string `yaml:"file"`
}

// MySQLConfig configures the optional MySQL sink
type MySQLConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile      string
	Platform        string
	Version         string
	PreviewFeatures string
	ResultsDir      string
	CSVPath         string
	Suites          []string
	Strict          bool
	LogLevel        string
	MySQL           bool
	NoSnapshot      bool
	NoProgress      bool
	ExitCode        bool
	Counts          bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Version:            DefaultVersion,
		ResultsDir:         DefaultResultsDir,
		CSVPath:            DefaultCSVPath,
		MaxLineLength:      DefaultMaxLineLength,
		MaxErrorCandidates: DefaultMaxErrorCandidates,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Snapshot: SnapshotConfig{
			Dir:  DefaultSnapshotDir,
			File: DefaultSnapshotFile,
		},
		MySQL: MySQLConfig{
			Host:  "127.0.0.1",
			Port:  "3306",
			User:  "root",
			Table: DefaultMySQLTable,
		},
	}
	// Copy default suites so callers can't mutate the package list
	cfg.Suites = make([]string, len(DefaultSuites))
	copy(cfg.Suites, DefaultSuites)
	return cfg
}

// Load builds the config from defaults, the YAML file, the environment
// (after loading .env) and finally the flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	// .env is optional, real environment variables win over it
	if err := godotenv.Load(DefaultEnvFile); err != nil && !os.IsNotExist(err) {
		return nil, reporterrors.Configf("load %s: %v", DefaultEnvFile, err)
	}

	path := flags.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.LoadFile(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)

	return cfg, nil
}

// ApplyEnv overrides settings from MCRA_* and DB_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return reporterrors.Configf("%s: not a number: %q", key, v)
		}
		*dst = n
		return nil
	}

	str("MCRA_PLATFORM", &c.Platform)
	str("MCRA_VERSION", &c.Version)
	str("MCRA_PREVIEW_FEATURES", &c.PreviewFeatures)
	str("MCRA_RESULTS_DIR", &c.ResultsDir)
	str("MCRA_CSV", &c.CSVPath)
	str("MCRA_LOG", &c.Logging.Level)
	str("MCRA_LOG_FORMAT", &c.Logging.Format)
	str("MCRA_LOG_FILE", &c.Logging.File)
	if v, ok := lookup("MCRA_SUITES"); ok && v != "" {
		c.Suites = SplitList(v)
	}
	if err := num("MCRA_MAX_LINE_LENGTH", &c.MaxLineLength); err != nil {
		return err
	}
	if err := num("MCRA_MAX_ERROR_CANDIDATES", &c.MaxErrorCandidates); err != nil {
		return err
	}

	// MySQL connection settings
	str("DB_HOST", &c.MySQL.Host)
	str("DB_PORT", &c.MySQL.Port)
	str("DB_USERNAME", &c.MySQL.User)
	str("DB_PASSWORD", &c.MySQL.Password)
	str("DB_DATABASE", &c.MySQL.Database)
	return nil
}

// ApplyFlags overrides settings with explicitly provided flags
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Platform != "" {
		c.Platform = flags.Platform
	}
	if flags.Version != "" {
		c.Version = flags.Version
	}
	if flags.PreviewFeatures != "" {
		c.PreviewFeatures = flags.PreviewFeatures
	}
	if flags.ResultsDir != "" {
		c.ResultsDir = flags.ResultsDir
	}
	if flags.CSVPath != "" {
		c.CSVPath = flags.CSVPath
	}
	if len(flags.Suites) > 0 {
		c.Suites = append([]string(nil), flags.Suites...)
	}
	if flags.Strict {
		c.StrictLookup = true
	}
	if flags.LogLevel != "" {
		c.Logging.Level = flags.LogLevel
	}
	if flags.MySQL {
		c.MySQL.Enabled = true
	}
}

// Validate checks the settings needed by the report command
func (c *Config) Validate() error {
	if c.Platform == "" {
		return reporterrors.Config("platform is required (--platform)")
	}
	if c.PreviewFeatures == "" {
		return reporterrors.Config("preview features are required (--preview-features)")
	}
	if len(c.Suites) == 0 {
		return reporterrors.Config("no suites configured")
	}
	for _, s := range c.Suites {
		if strings.ContainsAny(s, `*?[\/`) {
			return reporterrors.Configf("invalid suite name %q", s)
		}
	}
	if c.MySQL.Enabled && c.MySQL.Database == "" {
		return reporterrors.Config("mysql sink needs a database (DB_DATABASE or mysql.database)")
	}
	if c.MaxLineLength <= 0 {
		return reporterrors.Configf("max line length must be positive, got %d", c.MaxLineLength)
	}
	if c.MaxErrorCandidates <= 0 {
		return reporterrors.Configf("max error candidates must be positive, got %d", c.MaxErrorCandidates)
	}
	return nil
}

// GetSnapshotPath returns the absolute path of the last-run snapshot.
func (c *Config) GetSnapshotPath() string {
	p := filepath.Join(c.Snapshot.Dir, c.Snapshot.File)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetMySQLDSN returns the DSN for the MySQL sink
func (c *Config) GetMySQLDSN() string {
	dsn := c.mysqlConfig()
	dsn.DBName = c.MySQL.Database
	dsn.ParseTime = true
	return dsn.FormatDSN()
}

// GetMySQLServerDSN returns a DSN for the server without selecting a database
func (c *Config) GetMySQLServerDSN() string {
	return c.mysqlConfig().FormatDSN()
}

func (c *Config) mysqlConfig() *mysql.Config {
	dsn := mysql.NewConfig()
	dsn.User = c.MySQL.User
	dsn.Passwd = c.MySQL.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.MySQL.Host, c.MySQL.Port)
	return dsn
}

// SplitList splits a comma separated flag or variable, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
