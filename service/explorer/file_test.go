package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bookie/bookie/application/dependency"
	"github.com/bookie/bookie/inventory"
	"github.com/bookie/bookie/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFileService_DefaultFolderBootstrap(t *testing.T) {
	a := assert.New(t)
	ctx, dep := newTestContext(t)

	first := mustAddFile(t, ctx, &AddFileService{Title: "Plan"})
	a.True(first.UsedDefault)
	a.True(first.DefaultCreated)
	a.Equal(DefaultFolderName, first.Folder.Name)
	a.Equal(DefaultFolderNotes, *first.Folder.Notes)
	a.Equal("", first.File.Content)
	a.Equal("", first.File.Label)

	second := mustAddFile(t, ctx, &AddFileService{Title: "Other", Content: "c", Label: "l"})
	a.True(second.UsedDefault)
	a.False(second.DefaultCreated)
	a.Equal(first.Folder.ID, second.Folder.ID)
	a.Equal("c", second.File.Content)
	a.Equal("l", second.File.Label)

	_, err := (&AddFileService{Title: "Plan"}).Add(ctx)
	assertCode(t, serializer.CodeDuplicateTitleInFolder, err)

	folders, err := dep.FolderClient().List(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 1, "exactly one Default folder")
	a.Len(folders[0].Files, 2)
}

func TestAddFileService_ExistingDefaultIsReused(t *testing.T) {
	ctx, _ := newTestContext(t)
	existing := mustCreateFolder(t, ctx, DefaultFolderName, "made by hand")

	res := mustAddFile(t, ctx, &AddFileService{Title: "Plan"})
	assert.Equal(t, existing.ID, res.Folder.ID)
	assert.False(t, res.DefaultCreated)
	assert.Equal(t, "made by hand", *res.Folder.Notes)
}

func TestAddFileService_ExplicitFolder(t *testing.T) {
	a := assert.New(t)
	ctx, _ := newTestContext(t)
	work := mustCreateFolder(t, ctx, "Work", "n")
	home := mustCreateFolder(t, ctx, "Home", "n")

	res := mustAddFile(t, ctx, &AddFileService{Title: "  Plan ", FolderID: "1"})
	a.False(res.UsedDefault)
	a.Equal(work.ID, res.File.FolderID)
	a.Equal("Plan", res.File.Title)

	// Same title in a different folder is fine.
	res = mustAddFile(t, ctx, &AddFileService{Title: "Plan", FolderID: "2"})
	a.Equal(home.ID, res.File.FolderID)

	tests := []struct {
		name string
		s    AddFileService
		code int
	}{
		{"empty title", AddFileService{Title: "", FolderID: "1"}, serializer.CodeEmptyTitle},
		{"blank title", AddFileService{Title: " \t ", FolderID: "1"}, serializer.CodeEmptyTitle},
		{"invalid folder id", AddFileService{Title: "X", FolderID: "one"}, serializer.CodeInvalidID},
		{"unknown folder", AddFileService{Title: "X", FolderID: "99"}, serializer.CodeFolderNotFound},
		{"duplicate title", AddFileService{Title: "Plan", FolderID: "1"}, serializer.CodeDuplicateTitleInFolder},
		{"title too long", AddFileService{Title: strings.Repeat("t", 201), FolderID: "1"}, serializer.CodeParamTooLong},
		{"content too long", AddFileService{Title: "X", Content: strings.Repeat("c", 201), FolderID: "1"}, serializer.CodeParamTooLong},
		{"label too long", AddFileService{Title: "X", Label: strings.Repeat("l", 201), FolderID: "1"}, serializer.CodeParamTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Add(ctx)
			assertCode(t, tt.code, err)
		})
	}
}

func TestDeleteFileService(t *testing.T) {
	a := assert.New(t)
	ctx, dep := newTestContext(t)
	res := mustAddFile(t, ctx, &AddFileService{Title: "Plan"})

	deleted, err := (&DeleteFileService{ID: "1"}).Delete(ctx)
	require.NoError(t, err)
	a.Equal("Plan", deleted.Title)
	a.Equal(res.File.ID, deleted.ID)

	_, err = dep.FileClient().GetByID(ctx, res.File.ID)
	a.ErrorIs(err, inventory.ErrNotFound)

	// The folder stays.
	_, err = dep.FolderClient().GetByID(ctx, res.Folder.ID)
	a.NoError(err)

	tests := []struct {
		name string
		id   string
		code int
	}{
		{"missing", "", serializer.CodeMissingID},
		{"invalid", "x1", serializer.CodeInvalidID},
		{"already deleted", "1", serializer.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&DeleteFileService{ID: tt.id}).Delete(ctx)
			assertCode(t, tt.code, err)
		})
	}
}

// racyFolderClient pretends another writer created the Default folder between
// the lookup and the insert.
type racyFolderClient struct {
	inventory.FolderClient
	lookups int
}

func (c *racyFolderClient) GetByName(ctx context.Context, name string) (*inventory.Folder, error) {
	c.lookups++
	if c.lookups == 1 {
		return nil, inventory.ErrNotFound
	}
	return c.FolderClient.GetByName(ctx, name)
}

func TestEnsureDefaultFolder_ConcurrentCreate(t *testing.T) {
	ctx, dep := newTestContext(t)
	existing := mustCreateFolder(t, ctx, DefaultFolderName, "n")

	racy := &racyFolderClient{FolderClient: dep.FolderClient()}
	folder, created, err := ensureDefaultFolder(ctx, dep.Logger(), racy)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, folder.ID)
	assert.Equal(t, 2, racy.lookups)
}

// brokenDep serves storage clients that fail every call.
type brokenDep struct {
	dependency.Dep
}

var errDisk = errors.New("disk I/O error")

type brokenFolderClient struct {
	inventory.FolderClient
}

func (brokenFolderClient) GetByName(context.Context, string) (*inventory.Folder, error) {
	return nil, inventory.ErrNotFound
}

func (brokenFolderClient) GetByID(context.Context, int) (*inventory.Folder, error) {
	return &inventory.Folder{ID: 1, Name: "Work"}, nil
}

func (brokenFolderClient) Create(context.Context, string, *string) (*inventory.Folder, error) {
	return nil, errDisk
}

func (brokenFolderClient) List(context.Context) ([]*inventory.Folder, error) {
	return nil, errDisk
}

type brokenFileClient struct {
	inventory.FileClient
}

func (brokenFileClient) GetByTitle(context.Context, int, string) (*inventory.File, error) {
	return nil, inventory.ErrNotFound
}

func (brokenFileClient) Create(context.Context, *inventory.CreateFileArgs) (*inventory.File, error) {
	return nil, fmt.Errorf("%w: %w", inventory.ErrDuplicated, errDisk)
}

func (brokenDep) FolderClient() inventory.FolderClient { return brokenFolderClient{} }
func (brokenDep) FileClient() inventory.FileClient     { return brokenFileClient{} }

func TestStorageFailureIsWrapped(t *testing.T) {
	_, dep := newTestContext(t)
	ctx := dependency.WithContext(context.Background(), brokenDep{Dep: dep})

	_, err := (&CreateFolderService{Name: "Work", Notes: "n"}).Create(ctx)
	assertCode(t, serializer.CodeDBError, err)
	assert.ErrorIs(t, err, errDisk)

	_, err = (&ListFoldersService{}).List(ctx)
	assertCode(t, serializer.CodeDBError, err)

	// A constraint violation the pre-checks missed is still a storage failure.
	_, err = (&AddFileService{Title: "Plan", FolderID: "1"}).Add(ctx)
	assertCode(t, serializer.CodeDBError, err)
	assert.ErrorIs(t, err, inventory.ErrDuplicated)
}
