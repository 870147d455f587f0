package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newFieldsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List registered field types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printNames(cmd.OutOrStdout(), a.reg.Fields())
		},
	}
}

func newWidgetsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "widgets",
		Short: "List registered widgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printNames(cmd.OutOrStdout(), a.reg.Widgets())
		},
	}
}

func printNames(w io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return systemError(err, "")
		}
	}
	return nil
}
