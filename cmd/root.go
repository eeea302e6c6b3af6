package cmd

import (
	"context"
	"os"

	"github.com/bookie/bookie/application/dependency"
	"github.com/bookie/bookie/pkg/conf"
	"github.com/bookie/bookie/pkg/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the bookie command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bookie",
		Short: "Organize notes into folders from the command line",
		Long: `bookie is a CLI tool for organizing notes. Create named folders, attach files with a title, content and label to them, and list, update or delete either. Data is kept in a local database that persists between invocations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize(cmd, configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if dep, err := dependency.FromContextE(cmd.Context()); err == nil {
				return dep.Close()
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", conf.DefaultConfigFile, "Path to the INI config file")

	rootCmd.AddCommand(
		newCreateFolderCmd(),
		newListFoldersCmd(),
		newUpdateFolderCmd(),
		newDeleteFolderCmd(),
		newAddFileCmd(),
		newDeleteFileCmd(),
	)
	rootCmd.SetHelpCommand(newHelpCmd())

	return rootCmd
}

// initialize loads configuration and syncs the database schema. Any error
// here aborts the invocation before command logic runs.
func initialize(cmd *cobra.Command, configPath string) error {
	bootLogger := logging.NewConsoleLogger(logging.LevelWarning, cmd.ErrOrStderr())
	config, err := conf.NewIniConfigProvider(configPath, bootLogger)
	if err != nil {
		return err
	}

	l := logging.NewConsoleLogger(logging.ParseLevel(config.System().LogLevel), cmd.ErrOrStderr())
	if config.System().Debug {
		l.SetLevel(logging.LevelDebug)
	}

	dep := dependency.NewDependency(
		dependency.WithConfigProvider(config),
		dependency.WithLogger(l),
	)
	if err := dep.Initialize(cmd.Context()); err != nil {
		_ = dep.Close()
		return err
	}

	cmd.SetContext(dependency.WithContext(cmd.Context(), dep))
	return nil
}

// Execute runs the root command and exits non-zero on startup failures.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(rootCmd.ErrOrStderr(), "\n❌ %s\n\n", err)
		os.Exit(1)
	}
}
