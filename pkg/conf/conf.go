package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/bookie/bookie/pkg/logging"
	"github.com/bookie/bookie/pkg/util"
	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
)

const (
	// EnvPrefix is prepended to SECTION_KEY to build environment overrides,
	// e.g. BOOKIE_DATABASE_DBFILE.
	EnvPrefix = "BOOKIE_"
	// DefaultConfigFile is used when no --config flag is given.
	DefaultConfigFile = "conf.ini"
	// DefaultEnvFile is loaded into the environment when present.
	DefaultEnvFile = ".env"
)

type DBType string

const (
	SQLiteDB   DBType = "sqlite"
	SQLite3DB  DBType = "sqlite3"
	PostgresDB DBType = "postgres"
	MySqlDB    DBType = "mysql"
	MsSqlDB    DBType = "mssql"
)

// Database 数据库配置
type Database struct {
	Type        DBType
	User        string
	Password    string
	Host        string
	Name        string
	TablePrefix string
	DBFile      string
	Port        int
	Charset     string
	UnixSocket  bool
	SSL         string
}

// System 系统通用配置
type System struct {
	Debug    bool
	LogLevel string
}

// ConfigProvider exposes parsed configuration sections.
type ConfigProvider interface {
	Database() *Database
	System() *System
}

// DefaultDatabase returns the database section used when nothing is configured.
func DefaultDatabase() *Database {
	return &Database{
		Type:    SQLiteDB,
		DBFile:  "database.sqlite",
		Port:    3306,
		Charset: "utf8mb4",
	}
}

// DefaultSystem returns the system section used when nothing is configured.
func DefaultSystem() *System {
	return &System{
		LogLevel: "warning",
	}
}

type iniConfigProvider struct {
	database *Database
	system   *System
}

// NewIniConfigProvider reads the INI file at path on top of built-in defaults,
// then applies environment overrides. A missing file is not an error.
func NewIniConfigProvider(path string, l logging.Logger) (ConfigProvider, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !os.IsNotExist(err) {
		l.Warning("Failed to load %q: %s", DefaultEnvFile, err)
	}

	p := &iniConfigProvider{
		database: DefaultDatabase(),
		system:   DefaultSystem(),
	}
	sections := map[string]interface{}{
		"Database": p.database,
		"System":   p.system,
	}

	cfg := ini.Empty()
	for name, v := range sections {
		if err := cfg.Section(name).ReflectFrom(v); err != nil {
			return nil, fmt.Errorf("failed to prepare config section %q: %w", name, err)
		}
	}

	if path != "" {
		path = util.RelativePath(path)
		if util.Exists(path) {
			l.Debug("Loading config file %q.", path)
			if err := cfg.Append(path); err != nil {
				return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
			}
		} else {
			l.Debug("Config file %q not found, using defaults.", path)
		}
	}

	for name, v := range sections {
		sec := cfg.Section(name)
		applyEnvOverrides(sec, name, l)
		if err := sec.MapTo(v); err != nil {
			return nil, fmt.Errorf("failed to parse config section %q: %w", name, err)
		}
	}

	return p, nil
}

func applyEnvOverrides(sec *ini.Section, name string, l logging.Logger) {
	for _, key := range sec.Keys() {
		env := EnvPrefix + strings.ToUpper(name) + "_" + strings.ToUpper(key.Name())
		if v, ok := os.LookupEnv(env); ok {
			l.Debug("Override config %s.%s with env %s.", name, key.Name(), env)
			key.SetValue(v)
		}
	}
}

func (p *iniConfigProvider) Database() *Database {
	return p.database
}

func (p *iniConfigProvider) System() *System {
	return p.system
}

// NewStaticConfigProvider wraps already-built sections, mostly for tests.
func NewStaticConfigProvider(database *Database, system *System) ConfigProvider {
	if database == nil {
		database = DefaultDatabase()
	}
	if system == nil {
		system = DefaultSystem()
	}
	return &iniConfigProvider{database: database, system: system}
}
