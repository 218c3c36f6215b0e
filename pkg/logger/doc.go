// Package logger builds slog.Logger instances with sane defaults: JSON at
// info level for production, text at debug level for development.
//
//	log := logger.New(
//		logger.WithDevelopment("formkit-demo"),
//	)
//	log.Info("listening", "addr", ":8080")
package logger
