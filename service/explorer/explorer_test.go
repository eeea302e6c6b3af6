package explorer

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/bookie/bookie/application/dependency"
	"github.com/bookie/bookie/inventory"
	"github.com/bookie/bookie/pkg/conf"
	"github.com/bookie/bookie/pkg/logging"
	"github.com/bookie/bookie/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (context.Context, dependency.Dep) {
	t.Helper()
	dbConf := conf.DefaultDatabase()
	dbConf.DBFile = filepath.Join(t.TempDir(), "bookie.sqlite")

	dep := dependency.NewDependency(
		dependency.WithConfigProvider(conf.NewStaticConfigProvider(dbConf, nil)),
		dependency.WithLogger(logging.NewConsoleLogger(logging.LevelError, io.Discard)),
	)
	require.NoError(t, dep.Initialize(context.Background()))
	t.Cleanup(func() {
		_ = dep.Close()
	})

	return dependency.WithContext(context.Background(), dep), dep
}

func assertCode(t *testing.T, code int, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, serializer.CodeOf(err), err.Error())
}

func mustCreateFolder(t *testing.T, ctx context.Context, name, notes string) *inventory.Folder {
	t.Helper()
	folder, err := (&CreateFolderService{Name: name, Notes: notes}).Create(ctx)
	require.NoError(t, err)
	return folder
}

func mustAddFile(t *testing.T, ctx context.Context, s *AddFileService) *AddFileResult {
	t.Helper()
	res, err := s.Add(ctx)
	require.NoError(t, err)
	return res
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		id   int
		code int
	}{
		{"simple", "1", 1, 0},
		{"padded", " 42 ", 42, 0},
		{"empty", "", 0, serializer.CodeMissingID},
		{"blank", "   ", 0, serializer.CodeMissingID},
		{"letters", "abc", 0, serializer.CodeInvalidID},
		{"trailing garbage", "12abc", 0, serializer.CodeInvalidID},
		{"zero", "0", 0, serializer.CodeInvalidID},
		{"negative", "-3", 0, serializer.CodeInvalidID},
		{"float", "1.5", 0, serializer.CodeInvalidID},
		{"plus sign", "+1", 0, serializer.CodeInvalidID},
		{"leading zero", "01", 0, serializer.CodeInvalidID},
		{"overflow", "99999999999999999999999", 0, serializer.CodeInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseID(tt.raw, "folder")
			if tt.code == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.id, id)
				return
			}
			assertCode(t, tt.code, err)
		})
	}
}
