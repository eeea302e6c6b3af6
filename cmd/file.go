package cmd

import (
	"github.com/bookie/bookie/service/explorer"
	"github.com/spf13/cobra"
)

func newAddFileCmd() *cobra.Command {
	s := &explorer.AddFileService{}
	c := &cobra.Command{
		Use:   "add-file",
		Short: "Add a new file to a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := s.Add(cmd.Context())
			if err != nil {
				return reportError(cmd, "adding file", err)
			}

			w := cmd.OutOrStdout()
			switch {
			case res.DefaultCreated:
				printInfo(w, "📁 Created default folder for your files with ID: %d", res.Folder.ID)
			case res.UsedDefault:
				printInfo(w, "📁 Using default folder (ID: %d) for this file", res.Folder.ID)
			}
			printSuccess(w, "File %q added to folder %q successfully.", res.File.Title, res.Folder.Name)
			return nil
		},
	}
	c.Flags().StringVarP(&s.Title, "title", "n", "", "Title of the file")
	c.Flags().StringVarP(&s.Content, "content", "c", "", "Content of the file")
	c.Flags().StringVarP(&s.Label, "label", "l", "", "Label of the file")
	c.Flags().StringVarP(&s.FolderID, "folder", "f", "",
		"ID of the folder to add the file to (optional, the default folder is used if not provided)")
	return c
}

func newDeleteFileCmd() *cobra.Command {
	s := &explorer.DeleteFileService{}
	c := &cobra.Command{
		Use:   "delete-file",
		Short: "Delete a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := s.Delete(cmd.Context())
			if err != nil {
				return reportError(cmd, "deleting file", err)
			}

			printSuccess(cmd.OutOrStdout(), "File %q deleted successfully.", file.Title)
			return nil
		},
	}
	c.Flags().StringVarP(&s.ID, "file", "f", "", "ID of the file to delete")
	return c
}
