package inventory

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Folder 目录
type Folder struct {
	// 表字段
	ID        int     `gorm:"primaryKey"`
	Name      string  `gorm:"size:200;not null;uniqueIndex:idx_folders_name"`
	Notes     *string `gorm:"size:200"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 关联模型
	Files []File `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
}

type (
	// UpdateFolderArgs holds the fields to change. Nil fields keep their
	// current value.
	UpdateFolderArgs struct {
		Name  *string
		Notes *string
	}

	FolderClient interface {
		// Create inserts a new folder. Returns ErrDuplicated if the name is taken.
		Create(ctx context.Context, name string, notes *string) (*Folder, error)
		// GetByID returns the folder with the given id, or ErrNotFound.
		GetByID(ctx context.Context, id int) (*Folder, error)
		// GetByName returns the folder with exactly the given name, or ErrNotFound.
		GetByName(ctx context.Context, name string) (*Folder, error)
		// GetByNameExcluding is GetByName ignoring the folder with excludeID.
		GetByNameExcluding(ctx context.Context, name string, excludeID int) (*Folder, error)
		// List returns all folders by ascending id, each with its files attached.
		List(ctx context.Context) ([]*Folder, error)
		// Update applies a partial update and returns the updated folder.
		Update(ctx context.Context, id int, args *UpdateFolderArgs) (*Folder, error)
		// Delete removes the folder and all of its files in one transaction and
		// returns the number of files removed.
		Delete(ctx context.Context, id int) (int, error)
	}
)

// NewFolderClient returns a FolderClient backed by db.
func NewFolderClient(db *gorm.DB) FolderClient {
	return &folderClient{db: db}
}

type folderClient struct {
	db *gorm.DB
}

func (c *folderClient) Create(ctx context.Context, name string, notes *string) (*Folder, error) {
	folder := &Folder{Name: name, Notes: notes}
	if err := c.db.WithContext(ctx).Create(folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", translateError(err))
	}

	return folder, nil
}

func (c *folderClient) GetByID(ctx context.Context, id int) (*Folder, error) {
	folder := &Folder{}
	if err := c.db.WithContext(ctx).First(folder, id).Error; err != nil {
		return nil, translateError(err)
	}

	return folder, nil
}

func (c *folderClient) GetByName(ctx context.Context, name string) (*Folder, error) {
	folder := &Folder{}
	if err := c.db.WithContext(ctx).Where("name = ?", name).First(folder).Error; err != nil {
		return nil, translateError(err)
	}

	return folder, nil
}

func (c *folderClient) GetByNameExcluding(ctx context.Context, name string, excludeID int) (*Folder, error) {
	folder := &Folder{}
	if err := c.db.WithContext(ctx).
		Where("name = ? AND id <> ?", name, excludeID).
		First(folder).Error; err != nil {
		return nil, translateError(err)
	}

	return folder, nil
}

func (c *folderClient) List(ctx context.Context) ([]*Folder, error) {
	var folders []*Folder
	if err := c.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("id asc").
		Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", translateError(err))
	}

	return folders, nil
}

func (c *folderClient) Update(ctx context.Context, id int, args *UpdateFolderArgs) (*Folder, error) {
	folder := &Folder{}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(folder, id).Error; err != nil {
			return err
		}

		values := make(map[string]interface{}, 2)
		if args.Name != nil {
			values["name"] = *args.Name
		}
		if args.Notes != nil {
			values["notes"] = *args.Notes
		}
		if len(values) == 0 {
			return nil
		}

		if err := tx.Model(folder).Updates(values).Error; err != nil {
			return err
		}

		return tx.First(folder, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}

	return folder, nil
}

func (c *folderClient) Delete(ctx context.Context, id int) (int, error) {
	removed := 0
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Folder{}, id).Error; err != nil {
			return err
		}

		res := tx.Where("folder_id = ?", id).Delete(&File{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete files of folder %d: %w", id, res.Error)
		}
		removed = int(res.RowsAffected)

		res = tx.Delete(&Folder{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete folder %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
	if err != nil {
		return 0, translateError(err)
	}

	return removed, nil
}
