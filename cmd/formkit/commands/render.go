package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		schema schemaFlags
		values string
		output string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a schema as HTML form markup",
		Args:  cobra.NoArgs,
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

			markup, err := f.Render()
			if err != nil {
				return systemError(errors.Wrap(err, "render form"), "")
			}
			if output == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), markup)
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return systemError(errors.Wrapf(err, "create output directory %s", dir), "")
				}
			}
			if err := os.WriteFile(output, []byte(markup+"\n"), 0o644); err != nil {
				return systemError(errors.Wrapf(err, "write %s", output), "")
			}
			a.logger.Info("form rendered", "output", output)
			return nil
		},
	}
	schema.register(cmd)
	cmd.Flags().StringVar(&values, "values", "", "JSON file with initial values")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write markup to a file instead of stdout")
	return cmd
}
