// Package logging constructs the slog loggers used across flacmirror.
//
// It offers a console handler that keeps terminal output readable during
// a sync pass and a JSON handler for machine consumption, plus small
// wrappers over slog attribute constructors so call sites stay terse.
package logging
