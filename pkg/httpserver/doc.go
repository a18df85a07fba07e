// Package httpserver runs an http.Handler with sane timeouts and graceful shutdown.
//
// Run blocks until its context is cancelled or the process receives SIGINT or
// SIGTERM, then drains in-flight requests for up to the shutdown timeout.
// LivenessHandler and ReadinessHandler back the /health/live and /health/ready
// probes.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
