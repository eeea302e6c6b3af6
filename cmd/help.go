package cmd

import (
	"fmt"

	"github.com/bookie/bookie/pkg/table"
	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Display all commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) > 0 {
				target, _, err := root.Find(args)
				if err == nil && target != root {
					return target.Help()
				}
			}

			t := table.New([]string{"Command", "Description"}, nil)
			for _, c := range root.Commands() {
				if !c.IsAvailableCommand() && c != cmd {
					continue
				}
				t.Append(c.Name(), c.Short)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "\n📚 Bookie CLI - Available Commands:")
			fmt.Fprintln(w)
			fmt.Fprintln(w, t.String())
			return nil
		},
	}
}
