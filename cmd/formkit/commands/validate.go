package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	var (
		schema schemaFlags
		values string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate values against a schema",
		Long: `Validate builds a form from the schema, assigns the values and runs every
field's validators. Failures are printed as "path: message", one per line.

By default each field reports its first failing validator; --all reports every
failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.loadForm(cmd.Context(), schema)
			if err != nil {
				return err
			}
			input, err := readValues(values)
			if err != nil {
				return err
			}
			f.SetValues(input)

			result := f.Validate()
			if all {
				result = f.ValidateAll()
			}
			out := cmd.OutOrStdout()
			if result.OK() {
				fmt.Fprintln(out, "ok")
				return nil
			}
			count := 0
			for _, path := range result.Paths() {
				for _, msg := range result.Messages(path) {
					fmt.Fprintf(out, "%s: %s\n", path, msg)
					count++
				}
			}
			a.logger.Debug("validation failed", "fields", len(result.Paths()), "messages", count)
			return userError(errors.Wrapf(errInvalidValues, "%d field(s)", len(result.Paths())), "")
		},
	}
	schema.register(cmd)
	cmd.Flags().StringVar(&values, "values", "", "JSON file with the values to validate")
	cmd.Flags().BoolVar(&all, "all", false, "report every failing validator instead of the first per field")
	return cmd
}
