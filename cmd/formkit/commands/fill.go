package commands

import (
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/prompt"
)

func newFillCommand(a *app) *cobra.Command {
	var (
		schema schemaFlags
		values string
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively and print the values as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.loadForm(cmd.Context(), schema)
			if err != nil {
				return err
			}
			defaults, err := readValues(values)
			if err != nil {
				return err
			}
			f.SetValues(defaults)

			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver()
			}
			answers, err := prompt.Fill(cmd.Context(), f, driver)
			if err != nil {
				if errors.Is(err, prompt.ErrAborted) {
					return userError(err, "")
				}
				return systemError(errors.Wrap(err, "fill form"), "")
			}

			if result := f.Validate(); !result.OK() {
				a.logger.Warn("filled values failed validation", "fields", result.Paths())
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(answers)
		},
	}
	schema.register(cmd)
	cmd.Flags().StringVar(&values, "values", "", "JSON file with default answers")
	return cmd
}
