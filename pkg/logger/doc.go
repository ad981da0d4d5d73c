// Package logger builds *slog.Logger instances with functional options and
// offers attribute constructors that keep key names consistent.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.Env), "portal"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "navigation",
//	    logger.Path("/dashboard"),
//	    logger.Outcome(outcome),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
