// Package commands implements the formkit CLI.
package commands

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/prompt"
	"github.com/goliatone/go-formkit/pkg/registry"
)

const version = "0.1.0"

// Option customises the root command.
type Option func(*app)

// WithPromptDriver replaces the terminal driver used by fill.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(a *app) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithSearchPaths overrides where formkit.yaml is looked up.
func WithSearchPaths(paths ...string) Option {
	return func(a *app) {
		a.searchPaths = paths
	}
}

type app struct {
	configPath  string
	verbosity   int
	logFormat   string
	plugins     []string
	searchPaths []string

	driver prompt.Driver
	logger *slog.Logger
	reg    *registry.Registry
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "formkit",
		Short: "Build, validate and render forms from schemas",
		Long: `formkit resolves schema properties to field types through a registry,
runs their validators and renders them with widgets.

Plugins listed in formkit.yaml (or passed with --plugin) extend the registry
with field type and widget aliases and settings.`,
		Example: `  # List registered field types
  formkit fields

  # Validate values against a schema
  formkit validate --schema contact.yaml --values values.json

  # Render a form
  formkit render --schema contact.yaml`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("formkit version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./formkit.yaml or $XDG_CONFIG_HOME/formkit/formkit.yaml)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity (-v info, -vv debug and registry tracing)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text, json (default from config)")
	flags.StringSliceVar(&a.plugins, "plugin", nil, "additional plugin manifest(s) applied after configured ones")

	root.AddCommand(
		newFieldsCommand(a),
		newWidgetsCommand(a),
		newValidateCommand(a),
		newRenderCommand(a),
		newFillCommand(a),
	)
	return root
}

// setup loads the configuration, configures logging and builds the registry
// every subcommand works against.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, a.searchPaths...)
	if err != nil {
		return userError(err, "check formkit.yaml or the --config path")
	}

	formatName := cfg.LogFormat
	if cmd.Flags().Changed("log-format") {
		formatName = a.logFormat
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return userError(err, "use --log-format text or --log-format json")
	}
	a.logger = logging.New(logging.Config{
		Level:  logging.LevelFromVerbosity(a.verbosity),
		Format: format,
		Output: cmd.ErrOrStderr(),
	})

	settings := make(map[string]any, len(cfg.Settings)+1)
	for key, value := range cfg.Settings {
		settings[key] = value
	}
	if a.verbosity >= 2 {
		settings[registry.SettingDebug] = true
	}

	plugins, err := cfg.LoadPlugins(a.plugins...)
	if err != nil {
		return userError(err, "check the plugin manifest paths")
	}
	reg, err := formkit.NewRegistry(plugins,
		registry.WithLogger(a.logger),
		registry.WithSettings(settings),
	)
	if err != nil {
		return userError(err, "check the plugin manifests")
	}
	a.reg = reg
	a.logger.Info("registry ready",
		slog.String("config", cfg.File()),
		slog.Int("plugins", len(plugins)),
		slog.Int("fields", len(reg.Fields())),
		slog.Int("widgets", len(reg.Widgets())),
	)
	return nil
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with ctx.
func ExecuteContext(ctx context.Context, opts ...Option) error {
	err := NewRootCommand(opts...).ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return userError(err, "run 'formkit --help' for usage")
}
