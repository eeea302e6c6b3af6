package explorer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bookie/bookie/application/dependency"
	"github.com/bookie/bookie/inventory"
	"github.com/bookie/bookie/pkg/serializer"
	"github.com/cristalhq/natsort"
)

// Sort keys accepted by ListFoldersService.
const (
	SortByID   = "id"
	SortByName = "name"
)

type (
	// CreateFolderService creates a new folder
	CreateFolderService struct {
		Name  string `validate:"max=200"`
		Notes string `validate:"max=200"`
	}

	// ListFoldersService lists all folders with their files
	ListFoldersService struct {
		SortBy string
	}

	// UpdateFolderService partially updates a folder
	UpdateFolderService struct {
		ID    string
		Name  *string `validate:"omitempty,max=200"`
		Notes *string `validate:"omitempty,max=200"`
	}

	// DeleteFolderService deletes a folder and all of its files
	DeleteFolderService struct {
		ID   string
		Name string
	}

	// DeleteFolderResult describes what a folder deletion removed.
	DeleteFolderResult struct {
		Folder *inventory.Folder
		Files  []*inventory.File
	}
)

// Create validates the request and inserts the folder.
func (s *CreateFolderService) Create(ctx context.Context) (*inventory.Folder, error) {
	dep := dependency.FromContext(ctx)
	l := dep.Logger()
	folders := dep.FolderClient()

	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return nil, serializer.NewError(serializer.CodeEmptyName, "Folder name cannot be empty, please input a folder name", nil)
	}
	if s.Notes == "" {
		return nil, serializer.NewError(serializer.CodeMissingNotes, "Notes are required, please provide notes for the folder", nil)
	}
	if err := validateParams(s); err != nil {
		return nil, err
	}

	if err := ensureNameAvailable(ctx, folders, s.Name, 0); err != nil {
		return nil, err
	}

	notes := s.Notes
	folder, err := folders.Create(ctx, s.Name, &notes)
	if err != nil {
		return nil, dbError("Failed to create folder", err)
	}

	l.Info("Folder %q created with ID %d.", folder.Name, folder.ID)
	return folder, nil
}

// List returns all folders with their files. An empty slice means there are
// no folders yet.
func (s *ListFoldersService) List(ctx context.Context) ([]*inventory.Folder, error) {
	dep := dependency.FromContext(ctx)

	sortBy := strings.ToLower(strings.TrimSpace(s.SortBy))
	if sortBy != "" && sortBy != SortByID && sortBy != SortByName {
		return nil, serializer.NewError(serializer.CodeInvalidSort,
			fmt.Sprintf("Unknown sort key %q, use %q or %q", s.SortBy, SortByID, SortByName), nil)
	}

	folders, err := dep.FolderClient().List(ctx)
	if err != nil {
		return nil, dbError("Failed to list folders", err)
	}

	if sortBy == SortByName {
		applyNaturalSort(folders)
	}

	return folders, nil
}

// Update applies the provided fields to the folder. Fields left nil are not
// touched.
func (s *UpdateFolderService) Update(ctx context.Context) (*inventory.Folder, error) {
	dep := dependency.FromContext(ctx)
	l := dep.Logger()
	folders := dep.FolderClient()

	id, err := parseID(s.ID, "folder")
	if err != nil {
		return nil, err
	}

	if _, err := getFolder(ctx, folders, id, serializer.CodeNotFound); err != nil {
		return nil, err
	}

	if s.Name == nil && s.Notes == nil {
		return nil, serializer.NewError(serializer.CodeNoFieldsProvided, "Please provide at least a new name or notes to update", nil)
	}

	args := &inventory.UpdateFolderArgs{Notes: s.Notes}
	if s.Name != nil {
		name := strings.TrimSpace(*s.Name)
		if name == "" {
			return nil, serializer.NewError(serializer.CodeEmptyName, "Folder name cannot be empty", nil)
		}
		s.Name = &name
		args.Name = &name
	}
	if err := validateParams(s); err != nil {
		return nil, err
	}

	if args.Name != nil {
		if err := ensureNameAvailable(ctx, folders, *args.Name, id); err != nil {
			return nil, err
		}
	}

	folder, err := folders.Update(ctx, id, args)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, folderNotFound(serializer.CodeNotFound, id)
		}
		return nil, dbError("Failed to update folder", err)
	}

	l.Info("Folder %d updated.", folder.ID)
	return folder, nil
}

// Delete removes the folder identified by ID, or by Name if no ID is given,
// together with all of its files.
func (s *DeleteFolderService) Delete(ctx context.Context) (*DeleteFolderResult, error) {
	dep := dependency.FromContext(ctx)
	l := dep.Logger()
	folders := dep.FolderClient()

	var (
		folder *inventory.Folder
		err    error
	)

	name := strings.TrimSpace(s.Name)
	switch {
	case strings.TrimSpace(s.ID) != "":
		id, perr := parseID(s.ID, "folder")
		if perr != nil {
			return nil, perr
		}
		if folder, err = getFolder(ctx, folders, id, serializer.CodeNotFound); err != nil {
			return nil, err
		}
	case name != "":
		folder, err = folders.GetByName(ctx, name)
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, serializer.NewError(serializer.CodeNotFound,
				fmt.Sprintf("Folder with name %q not found, please check the folder name", name), nil)
		}
		if err != nil {
			return nil, dbError("Failed to get folder", err)
		}
	default:
		return nil, serializer.NewError(serializer.CodeMissingID, "Please provide the ID or the name of the folder to delete", nil)
	}

	files, err := dep.FileClient().ListByFolder(ctx, folder.ID)
	if err != nil {
		return nil, dbError("Failed to list files of folder", err)
	}

	removed, err := folders.Delete(ctx, folder.ID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, folderNotFound(serializer.CodeNotFound, folder.ID)
		}
		return nil, dbError("Failed to delete folder", err)
	}

	l.Info("Folder %d deleted with %d file(s).", folder.ID, removed)
	return &DeleteFolderResult{Folder: folder, Files: files}, nil
}

// getFolder loads a folder by id, reporting a missing folder with code.
func getFolder(ctx context.Context, folders inventory.FolderClient, id int, code int) (*inventory.Folder, error) {
	folder, err := folders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, folderNotFound(code, id)
		}
		return nil, dbError("Failed to get folder", err)
	}

	return folder, nil
}

// ensureNameAvailable fails if a folder other than excludeID is named name.
func ensureNameAvailable(ctx context.Context, folders inventory.FolderClient, name string, excludeID int) error {
	var err error
	if excludeID > 0 {
		_, err = folders.GetByNameExcluding(ctx, name, excludeID)
	} else {
		_, err = folders.GetByName(ctx, name)
	}

	switch {
	case err == nil:
		return serializer.NewError(serializer.CodeDuplicateName,
			fmt.Sprintf("A folder named %q already exists, please use a different name", name), nil)
	case errors.Is(err, inventory.ErrNotFound):
		return nil
	default:
		return dbError("Failed to check folder name", err)
	}
}

func folderNotFound(code int, id int) error {
	return serializer.NewError(code,
		fmt.Sprintf("Folder with ID %d not found, please check the folder ID", id), nil)
}

// applyNaturalSort orders folders, and the files within each, by name using
// natural ordering. Equal names keep their id order.
func applyNaturalSort(folders []*inventory.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		return natsort.Less(folders[i].Name, folders[j].Name)
	})
	for _, f := range folders {
		files := f.Files
		sort.SliceStable(files, func(i, j int) bool {
			return natsort.Less(files[i].Title, files[j].Title)
		})
	}
}
