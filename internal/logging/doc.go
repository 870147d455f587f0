// Package logging builds the slog loggers used by the formkit CLI.
//
// Text output goes through Handler, which colours levels and keys when the
// destination is a terminal. JSON output uses the standard JSON handler.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(1),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
package logging
