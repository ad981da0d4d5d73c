// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled or the process receives SIGINT/SIGTERM.
package httpserver
