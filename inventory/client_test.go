package inventory

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bookie/bookie/pkg/conf"
	"github.com/bookie/bookie/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() logging.Logger {
	return logging.NewConsoleLogger(logging.LevelError, io.Discard)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbConf := conf.DefaultDatabase()
	dbConf.DBFile = filepath.Join(t.TempDir(), "bookie.sqlite")

	db, err := NewGormClient(testLogger(), conf.NewStaticConfigProvider(dbConf, nil))
	require.NoError(t, err)
	require.NoError(t, Sync(context.Background(), testLogger(), db))
	t.Cleanup(func() {
		_ = Close(db)
	})

	return db
}

func TestNewGormClient_UnsupportedType(t *testing.T) {
	dbConf := conf.DefaultDatabase()
	dbConf.Type = "oracle"

	_, err := NewGormClient(testLogger(), conf.NewStaticConfigProvider(dbConf, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestSync_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Sync(context.Background(), testLogger(), db))

	m := db.Migrator()
	assert.True(t, m.HasTable(&Folder{}))
	assert.True(t, m.HasTable(&File{}))
	assert.True(t, m.HasIndex(&Folder{}, "idx_folders_name"))
	assert.True(t, m.HasIndex(&File{}, "idx_files_folder_title"))
}

func TestSync_Persists(t *testing.T) {
	dbConf := conf.DefaultDatabase()
	dbConf.DBFile = filepath.Join(t.TempDir(), "nested", "bookie.sqlite")
	provider := conf.NewStaticConfigProvider(dbConf, nil)
	ctx := context.Background()

	db, err := NewGormClient(testLogger(), provider)
	require.NoError(t, err)
	require.NoError(t, Sync(ctx, testLogger(), db))
	_, err = NewFolderClient(db).Create(ctx, "Work", nil)
	require.NoError(t, err)
	require.NoError(t, Close(db))

	// Second process invocation against the same file.
	db, err = NewGormClient(testLogger(), provider)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Sync(ctx, testLogger(), db))

	folder, err := NewFolderClient(db).GetByName(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, 1, folder.ID)
}

func TestDSNBuilders(t *testing.T) {
	a := assert.New(t)
	dbConf := &conf.Database{
		User:     "root",
		Password: "secret",
		Host:     "127.0.0.1",
		Port:     3306,
		Name:     "bookie",
		Charset:  "utf8mb4",
	}

	dsn := mysqlDSN(dbConf)
	a.True(strings.HasPrefix(dsn, "root:secret@tcp(127.0.0.1:3306)/bookie?"), dsn)
	a.Contains(dsn, "charset=utf8mb4")
	a.Contains(dsn, "parseTime=true")

	dbConf.UnixSocket = true
	dbConf.Host = "/var/run/mysqld.sock"
	a.Contains(mysqlDSN(dbConf), "unix(/var/run/mysqld.sock)")

	dbConf.SSL = "require"
	a.Contains(mssqlDSN(dbConf), "encrypt=true")
	dbConf.SSL = ""
	a.Contains(mssqlDSN(dbConf), "encrypt=false")
}
