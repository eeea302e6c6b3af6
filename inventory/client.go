package inventory

import (
	"context"
	rawsql "database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/bookie/bookie/inventory/debug"
	"github.com/bookie/bookie/pkg/conf"
	"github.com/bookie/bookie/pkg/logging"
	"github.com/bookie/bookie/pkg/util"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"modernc.org/sqlite"
)

// SQLiteDriverName is the database/sql driver registered by this package. It
// is modernc.org/sqlite with foreign key enforcement switched on for every
// connection.
const SQLiteDriverName = "sqlite_fk"

// NewGormClient opens a database connection for the configured dialect.
func NewGormClient(l logging.Logger, config conf.ConfigProvider) (*gorm.DB, error) {
	l.Info("Initializing database connection...")
	dbConfig := config.Database()
	confDBType := dbConfig.Type
	if confDBType == conf.SQLite3DB || confDBType == "" {
		confDBType = conf.SQLiteDB
	}

	gormConfig := &gorm.Config{
		Logger:         debug.NewGormLogger(l, gormlogger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: dbConfig.TablePrefix,
		},
	}
	if config.System().Debug {
		l.Debug("Debug mode is enabled for DB client.")
		gormConfig.Logger = debug.NewGormLogger(l, gormlogger.Info)
	}

	var dialector gorm.Dialector
	switch confDBType {
	case conf.SQLiteDB:
		dbFile := util.RelativePath(dbConfig.DBFile)
		if err := util.EnsureDir(dbFile); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		l.Info("Connect to SQLite database %q.", dbFile)
		dialector = gormsqlite.New(gormsqlite.Config{
			DriverName: SQLiteDriverName,
			DSN:        dbFile,
		})
	case conf.PostgresDB:
		l.Info("Connect to Postgres database %q.", dbConfig.Host)
		dialector = postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			dbConfig.Host,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.Name,
			dbConfig.Port))
	case conf.MySqlDB:
		l.Info("Connect to MySQL database %q.", dbConfig.Host)
		dialector = mysql.Open(mysqlDSN(dbConfig))
	case conf.MsSqlDB:
		l.Info("Connect to SQL Server database %q.", dbConfig.Host)
		dialector = sqlserver.Open(mssqlDSN(dbConfig))
	default:
		return nil, fmt.Errorf("unsupported database type %q", confDBType)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(50)
	if confDBType == conf.SQLiteDB {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(100)
	}

	// Set timeout
	sqlDB.SetConnMaxLifetime(time.Second * 30)

	return db, nil
}

// Sync creates or verifies the schema. It must run before any command logic.
func Sync(ctx context.Context, l logging.Logger, db *gorm.DB) error {
	l.Info("Syncing database schema...")
	if err := db.WithContext(ctx).AutoMigrate(&Folder{}, &File{}); err != nil {
		return fmt.Errorf("failed to sync database schema: %w", err)
	}

	l.Info("Database schema is up to date.")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mysqlDSN(dbConfig *conf.Database) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = dbConfig.User
	cfg.Passwd = dbConfig.Password
	cfg.DBName = dbConfig.Name
	cfg.ParseTime = true
	cfg.Loc = time.Local
	if dbConfig.UnixSocket {
		cfg.Net = "unix"
		cfg.Addr = dbConfig.Host
	} else {
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", dbConfig.Host, dbConfig.Port)
	}
	if dbConfig.Charset != "" {
		cfg.Params = map[string]string{"charset": dbConfig.Charset}
	}

	return cfg.FormatDSN()
}

func mssqlDSN(dbConfig *conf.Database) string {
	var encryptParam string
	switch strings.ToLower(dbConfig.SSL) {
	case "disable":
		encryptParam = "disable"
	case "require":
		encryptParam = "true"
	default: // prefer
		encryptParam = "false"
	}

	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s&encrypt=%s",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.Name,
		encryptParam)
}

type sqliteFKDriver struct {
	*sqlite.Driver
}

type sqliteDriverConn interface {
	Exec(string, []driver.Value) (driver.Result, error)
}

func (d sqliteFKDriver) Open(name string) (conn driver.Conn, err error) {
	conn, err = d.Driver.Open(name)
	if err != nil {
		return
	}
	_, err = conn.(sqliteDriverConn).Exec("PRAGMA foreign_keys = ON;", nil)
	if err != nil {
		_ = conn.Close()
	}
	return
}

func init() {
	for _, d := range rawsql.Drivers() {
		if d == SQLiteDriverName {
			return
		}
	}
	rawsql.Register(SQLiteDriverName, sqliteFKDriver{Driver: &sqlite.Driver{}})
}
