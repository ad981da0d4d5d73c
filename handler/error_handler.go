package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/portalguard/pkg/logger"
)

// LoggingErrorHandler logs client errors at warn and everything else at
// error level, then delegates to DefaultErrorHandler.
func LoggingErrorHandler(log *slog.Logger) ErrorHandler {
	return func(ctx Context, err error) {
		level := slog.LevelError
		var httpErr HTTPError
		if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "request failed",
			logger.Path(ctx.Request().URL.Path),
			logger.Error(err),
		)
		DefaultErrorHandler(ctx, err)
	}
}
