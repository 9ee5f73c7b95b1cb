// Package logging provides structured logging configuration for the
// motionmock harness.
//
// It wraps log/slog so every component logs the same way. Components
// accept a *slog.Logger in their constructor; pass logging.Nop() when
// output is unwanted (library use, tests).
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//	logger.Info("listening", "service", "preview", "port", 32079)
package logging
