package commands

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// schemaFlags are shared by the commands that build a form.
type schemaFlags struct {
	path      string
	component string
}

func (s *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.path, "schema", "s", "", "schema file (JSON Schema or OpenAPI, JSON or YAML)")
	cmd.Flags().StringVar(&s.component, "component", "", "component schema to use from an OpenAPI document")
	_ = cmd.MarkFlagRequired("schema")
}

func (a *app) loadForm(ctx context.Context, flags schemaFlags) (*formkit.Form, error) {
	var opts []schema.Option
	if flags.component != "" {
		opts = append(opts, schema.WithComponent(flags.component))
	}
	f, err := formkit.LoadForm(ctx, a.reg, flags.path, opts)
	if err != nil {
		return nil, userError(errors.Wrapf(err, "load form %s", flags.path), "check the schema file and its x-formkit extensions")
	}
	return f, nil
}

func readValues(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, userError(errors.Wrapf(err, "read values %s", path), "")
	}
	values := map[string]any{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, userError(errors.Wrapf(err, "decode values %s", path), "values must be a JSON object keyed by field name")
	}
	return values, nil
}
