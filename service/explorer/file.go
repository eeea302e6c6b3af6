package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookie/bookie/application/dependency"
	"github.com/bookie/bookie/inventory"
	"github.com/bookie/bookie/pkg/logging"
	"github.com/bookie/bookie/pkg/serializer"
	"github.com/samber/lo"
)

const (
	// DefaultFolderName is the folder used when a file is added without one.
	DefaultFolderName = "Default"
	// DefaultFolderNotes is stored on the Default folder when it is created.
	DefaultFolderNotes = "Default folder for files with no specified folder"
)

type (
	// AddFileService adds a file to a folder
	AddFileService struct {
		Title    string `validate:"max=200"`
		Content  string `validate:"max=200"`
		Label    string `validate:"max=200"`
		FolderID string
	}

	// AddFileResult describes the created file and where it went.
	AddFileResult struct {
		File   *inventory.File
		Folder *inventory.Folder
		// UsedDefault is set when no folder was given and the Default folder
		// was used.
		UsedDefault bool
		// DefaultCreated is set when this call created the Default folder.
		DefaultCreated bool
	}

	// DeleteFileService deletes a single file
	DeleteFileService struct {
		ID string
	}
)

// Add validates the request, resolves the target folder and inserts the file.
func (s *AddFileService) Add(ctx context.Context) (*AddFileResult, error) {
	dep := dependency.FromContext(ctx)
	l := dep.Logger()
	folders := dep.FolderClient()
	files := dep.FileClient()

	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return nil, serializer.NewError(serializer.CodeEmptyTitle, "File title cannot be empty, please input a file title", nil)
	}
	if err := validateParams(s); err != nil {
		return nil, err
	}

	res := &AddFileResult{}
	if strings.TrimSpace(s.FolderID) == "" {
		folder, created, err := ensureDefaultFolder(ctx, l, folders)
		if err != nil {
			return nil, err
		}
		res.Folder, res.UsedDefault, res.DefaultCreated = folder, true, created
	} else {
		id, err := parseID(s.FolderID, "folder")
		if err != nil {
			return nil, err
		}
		if res.Folder, err = getFolder(ctx, folders, id, serializer.CodeFolderNotFound); err != nil {
			return nil, err
		}
	}

	_, err := files.GetByTitle(ctx, res.Folder.ID, s.Title)
	switch {
	case err == nil:
		return nil, serializer.NewError(serializer.CodeDuplicateTitleInFolder,
			fmt.Sprintf("A file titled %q already exists in folder %q, please use a different title", s.Title, res.Folder.Name), nil)
	case !errors.Is(err, inventory.ErrNotFound):
		return nil, dbError("Failed to check file title", err)
	}

	res.File, err = files.Create(ctx, &inventory.CreateFileArgs{
		Title:    s.Title,
		Content:  s.Content,
		Label:    s.Label,
		FolderID: res.Folder.ID,
	})
	if err != nil {
		return nil, dbError("Failed to add file", err)
	}

	l.Info("File %q added to folder %d with ID %d.", res.File.Title, res.Folder.ID, res.File.ID)
	return res, nil
}

// Delete removes the file and returns it as it was before deletion.
func (s *DeleteFileService) Delete(ctx context.Context) (*inventory.File, error) {
	dep := dependency.FromContext(ctx)
	files := dep.FileClient()

	id, err := parseID(s.ID, "file")
	if err != nil {
		return nil, err
	}

	file, err := files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, fileNotFound(id)
		}
		return nil, dbError("Failed to get file", err)
	}

	if err := files.Delete(ctx, id); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, fileNotFound(id)
		}
		return nil, dbError("Failed to delete file", err)
	}

	dep.Logger().Info("File %d (%q) deleted.", file.ID, file.Title)
	return file, nil
}

// ensureDefaultFolder returns the Default folder, creating it on first use.
// The bool result reports whether it was created by this call.
func ensureDefaultFolder(ctx context.Context, l logging.Logger, folders inventory.FolderClient) (*inventory.Folder, bool, error) {
	folder, err := folders.GetByName(ctx, DefaultFolderName)
	if err == nil {
		l.Debug("Using default folder %d.", folder.ID)
		return folder, false, nil
	}
	if !errors.Is(err, inventory.ErrNotFound) {
		return nil, false, dbError("Failed to get default folder", err)
	}

	folder, err = folders.Create(ctx, DefaultFolderName, lo.ToPtr(DefaultFolderNotes))
	if errors.Is(err, inventory.ErrDuplicated) {
		// Created by someone else since the lookup above.
		folder, err = folders.GetByName(ctx, DefaultFolderName)
		if err != nil {
			return nil, false, dbError("Failed to get default folder", err)
		}
		return folder, false, nil
	}
	if err != nil {
		return nil, false, dbError("Failed to create default folder", err)
	}

	l.Info("Default folder created with ID %d.", folder.ID)
	return folder, true, nil
}

func fileNotFound(id int) error {
	return serializer.NewError(serializer.CodeNotFound,
		fmt.Sprintf("File with ID %d not found, please check the file ID", id), nil)
}
