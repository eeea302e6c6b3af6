package dependency

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookie/bookie/inventory"
	"github.com/bookie/bookie/pkg/conf"
	"github.com/bookie/bookie/pkg/logging"
	"gorm.io/gorm"
)

// DepCtx is the context key for the dependency container.
type DepCtx struct{}

// Dep manages all dependencies of a single command invocation.
type Dep interface {
	// Logger returns the application logger.
	Logger() logging.Logger
	// ConfigProvider returns the loaded configuration.
	ConfigProvider() conf.ConfigProvider
	// DBClient returns the database handle. Only valid after Initialize.
	DBClient() *gorm.DB
	// FolderClient returns the folder storage client.
	FolderClient() inventory.FolderClient
	// FileClient returns the file storage client.
	FileClient() inventory.FileClient
	// Initialize opens the database and syncs the schema. Command logic must
	// not run if it fails.
	Initialize(ctx context.Context) error
	// Close releases the database connection.
	Close() error
}

type Option func(*dependency)

// WithConfigProvider sets the configuration source.
func WithConfigProvider(c conf.ConfigProvider) Option {
	return func(d *dependency) {
		d.configProvider = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(d *dependency) {
		d.logger = l
	}
}

// WithDBClient uses an already opened database instead of opening one from config.
func WithDBClient(db *gorm.DB) Option {
	return func(d *dependency) {
		d.dbClient = db
	}
}

type dependency struct {
	configProvider conf.ConfigProvider
	logger         logging.Logger
	dbClient       *gorm.DB
	folderClient   inventory.FolderClient
	fileClient     inventory.FileClient
	ownsDB         bool
}

// NewDependency creates a new Dep instance.
func NewDependency(opts ...Option) Dep {
	d := &dependency{}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *dependency) Logger() logging.Logger {
	if d.logger == nil {
		d.logger = logging.NewConsoleLogger(logging.ParseLevel(d.ConfigProvider().System().LogLevel), nil)
	}
	return d.logger
}

func (d *dependency) ConfigProvider() conf.ConfigProvider {
	if d.configProvider == nil {
		d.configProvider = conf.NewStaticConfigProvider(nil, nil)
	}
	return d.configProvider
}

func (d *dependency) DBClient() *gorm.DB {
	return d.dbClient
}

func (d *dependency) FolderClient() inventory.FolderClient {
	if d.folderClient == nil {
		d.folderClient = inventory.NewFolderClient(d.dbClient)
	}
	return d.folderClient
}

func (d *dependency) FileClient() inventory.FileClient {
	if d.fileClient == nil {
		d.fileClient = inventory.NewFileClient(d.dbClient)
	}
	return d.fileClient
}

func (d *dependency) Initialize(ctx context.Context) error {
	l := d.Logger()
	if d.dbClient == nil {
		db, err := inventory.NewGormClient(l, d.ConfigProvider())
		if err != nil {
			return err
		}
		d.dbClient = db
		d.ownsDB = true
	}

	if err := inventory.Sync(ctx, l, d.dbClient); err != nil {
		return err
	}

	return nil
}

func (d *dependency) Close() error {
	if d.dbClient == nil || !d.ownsDB {
		return nil
	}
	if err := inventory.Close(d.dbClient); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.dbClient = nil
	return nil
}

// WithContext returns a context carrying dep and its logger.
func WithContext(ctx context.Context, dep Dep) context.Context {
	ctx = context.WithValue(ctx, DepCtx{}, dep)
	return context.WithValue(ctx, logging.LoggerCtx{}, dep.Logger())
}

// ErrNoDependency is returned by FromContextE when ctx carries no Dep.
var ErrNoDependency = errors.New("no dependency in context")

// FromContext retrieves a Dep instance from context. It panics if none is set.
func FromContext(ctx context.Context) Dep {
	dep, err := FromContextE(ctx)
	if err != nil {
		panic(err)
	}
	return dep
}

// FromContextE is FromContext returning an error instead of panicking.
func FromContextE(ctx context.Context) (Dep, error) {
	if dep, ok := ctx.Value(DepCtx{}).(Dep); ok {
		return dep, nil
	}
	return nil, ErrNoDependency
}
