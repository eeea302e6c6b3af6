package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/bookie/bookie/pkg/serializer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	successStyle = color.New(color.FgGreen)
	errorStyle   = color.New(color.FgRed)
)

func printSuccess(w io.Writer, format string, a ...interface{}) {
	successStyle.Fprintf(w, "\n✅ "+format+"\n\n", a...)
}

func printInfo(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "\n"+format+"\n", a...)
}

// reportError prints a failed operation and returns nil so the invocation
// still ends cleanly. Storage failures carry their cause.
func reportError(cmd *cobra.Command, action string, err error) error {
	w := cmd.ErrOrStderr()

	var appErr serializer.AppError
	if !errors.As(err, &appErr) || appErr.Code == serializer.CodeDBError {
		errorStyle.Fprintf(w, "\n❌ Error %s: %s\n\n", action, err)
		return nil
	}

	errorStyle.Fprintf(w, "\n❌ %s\n\n", appErr.Msg)
	return nil
}

// optionalString returns a pointer to the flag value if it was set on the
// command line, nil otherwise.
func optionalString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}
