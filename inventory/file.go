package inventory

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// File 文件
type File struct {
	// 表字段
	ID        int    `gorm:"primaryKey"`
	Title     string `gorm:"size:200;not null;uniqueIndex:idx_files_folder_title,priority:2"`
	Content   string `gorm:"size:200"`
	Label     string `gorm:"size:200"`
	FolderID  int    `gorm:"not null;index:idx_files_folder_id;uniqueIndex:idx_files_folder_title,priority:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type (
	CreateFileArgs struct {
		Title    string
		Content  string
		Label    string
		FolderID int
	}

	FileClient interface {
		// Create inserts a file. Returns ErrDuplicated if the folder already has
		// a file with the same title, ErrForeignKey if the folder does not exist.
		Create(ctx context.Context, args *CreateFileArgs) (*File, error)
		// GetByID returns the file with the given id, or ErrNotFound.
		GetByID(ctx context.Context, id int) (*File, error)
		// GetByTitle returns the file titled title inside folderID, or ErrNotFound.
		GetByTitle(ctx context.Context, folderID int, title string) (*File, error)
		// ListByFolder returns files of a folder by ascending id.
		ListByFolder(ctx context.Context, folderID int) ([]*File, error)
		// Delete removes a single file, or returns ErrNotFound.
		Delete(ctx context.Context, id int) error
	}
)

// NewFileClient returns a FileClient backed by db.
func NewFileClient(db *gorm.DB) FileClient {
	return &fileClient{db: db}
}

type fileClient struct {
	db *gorm.DB
}

func (c *fileClient) Create(ctx context.Context, args *CreateFileArgs) (*File, error) {
	file := &File{
		Title:    args.Title,
		Content:  args.Content,
		Label:    args.Label,
		FolderID: args.FolderID,
	}
	if err := c.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, fmt.Errorf("failed to create file: %w", translateError(err))
	}

	return file, nil
}

func (c *fileClient) GetByID(ctx context.Context, id int) (*File, error) {
	file := &File{}
	if err := c.db.WithContext(ctx).First(file, id).Error; err != nil {
		return nil, translateError(err)
	}

	return file, nil
}

func (c *fileClient) GetByTitle(ctx context.Context, folderID int, title string) (*File, error) {
	file := &File{}
	if err := c.db.WithContext(ctx).
		Where("folder_id = ? AND title = ?", folderID, title).
		First(file).Error; err != nil {
		return nil, translateError(err)
	}

	return file, nil
}

func (c *fileClient) ListByFolder(ctx context.Context, folderID int) ([]*File, error) {
	var files []*File
	if err := c.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("id asc").
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list files: %w", translateError(err))
	}

	return files, nil
}

func (c *fileClient) Delete(ctx context.Context, id int) error {
	res := c.db.WithContext(ctx).Delete(&File{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete file: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
