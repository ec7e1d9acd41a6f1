// Package health provides liveness and readiness probes for the
// watch-mode HTTP server.
//
// A Checker aggregates named component checks (for example the compile
// cache backend) and exposes them over the standard probe endpoints:
//
//	checker := health.New(5 * time.Second)
//	checker.Register("cache", func(ctx context.Context) error {
//		_, err := store.Len(ctx)
//		return err
//	})
//	health.Mount(mux, checker, version, commit, buildDate)
//
// Liveness never runs component checks. Readiness runs all of them
// concurrently with a per-check timeout and returns 503 when any
// component reports unhealthy.
package health
