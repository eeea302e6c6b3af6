package cmd

import (
	"fmt"
	"strings"

	"github.com/bookie/bookie/inventory"
	"github.com/bookie/bookie/pkg/table"
	"github.com/bookie/bookie/service/explorer"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newCreateFolderCmd() *cobra.Command {
	s := &explorer.CreateFolderService{}
	c := &cobra.Command{
		Use:   "create-folder",
		Short: "Create a new folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := s.Create(cmd.Context())
			if err != nil {
				return reportError(cmd, "creating folder", err)
			}

			printSuccess(cmd.OutOrStdout(), "Folder %q created successfully with ID: %d", folder.Name, folder.ID)
			return nil
		},
	}
	c.Flags().StringVarP(&s.Name, "name", "n", "", "Name of the folder")
	c.Flags().StringVarP(&s.Notes, "notes", "d", "", "Notes for the folder")
	return c
}

func newListFoldersCmd() *cobra.Command {
	s := &explorer.ListFoldersService{}
	c := &cobra.Command{
		Use:   "list-folders",
		Short: "List all folders and files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := s.List(cmd.Context())
			if err != nil {
				return reportError(cmd, "listing folders", err)
			}

			w := cmd.OutOrStdout()
			if len(folders) == 0 {
				printInfo(w, "📂 No folders found. Create one using the \"create-folder\" command.\n")
				return nil
			}

			printInfo(w, "📚 Your Folders and Files:\n")
			fmt.Fprintln(w, folderTable(folders).String())
			return nil
		},
	}
	c.Flags().StringVar(&s.SortBy, "sort", explorer.SortByID, `Sort folders and files by "id" or "name"`)
	return c
}

func folderTable(folders []*inventory.Folder) *table.Table {
	t := table.New([]string{"ID", "Folder Name", "Notes", "Files"}, []int{5, 20, 30, 30})
	for _, f := range folders {
		titles := "No files"
		if len(f.Files) > 0 {
			titles = strings.Join(lo.Map(f.Files, func(file inventory.File, _ int) string {
				return file.Title
			}), ", ")
		}
		notes := lo.FromPtr(f.Notes)
		t.Append(f.ID, f.Name, lo.Ternary(notes != "", notes, "No notes"), titles)
	}
	return t
}

func newUpdateFolderCmd() *cobra.Command {
	s := &explorer.UpdateFolderService{}
	c := &cobra.Command{
		Use:   "update-folder",
		Short: "Update a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.Name = optionalString(cmd.Flags(), "name")
			s.Notes = optionalString(cmd.Flags(), "notes")

			folder, err := s.Update(cmd.Context())
			if err != nil {
				return reportError(cmd, "updating folder", err)
			}

			printSuccess(cmd.OutOrStdout(), "Folder with ID %d updated successfully to %q", folder.ID, folder.Name)
			return nil
		},
	}
	c.Flags().StringVarP(&s.ID, "id", "i", "", "ID of the folder to update")
	c.Flags().StringP("name", "n", "", "New name for the folder")
	c.Flags().StringP("notes", "d", "", "New notes for the folder")
	return c
}

func newDeleteFolderCmd() *cobra.Command {
	s := &explorer.DeleteFolderService{}
	c := &cobra.Command{
		Use:   "delete-folder",
		Short: "Delete a folder and all of its files, by ID or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := s.Delete(cmd.Context())
			if err != nil {
				return reportError(cmd, "deleting folder", err)
			}

			w := cmd.OutOrStdout()
			if len(res.Files) > 0 {
				printInfo(w, "🗂  Removing %d file(s): %s", len(res.Files), strings.Join(lo.Map(res.Files, func(f *inventory.File, _ int) string {
					return f.Title
				}), ", "))
			}
			printSuccess(w, "Folder %q with ID %d deleted successfully", res.Folder.Name, res.Folder.ID)
			return nil
		},
	}
	c.Flags().StringVarP(&s.ID, "id", "i", "", "ID of the folder")
	c.Flags().StringVarP(&s.Name, "name", "n", "", "Name of the folder")
	return c
}
