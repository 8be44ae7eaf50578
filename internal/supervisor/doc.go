// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package supervisor provides process supervision for Moodboard using suture v4.

The tree has two layers:

	RootSupervisor ("moodboard")
	├── DataSupervisor ("data-layer")
	│   └── TrendCacheGCService (when trends are enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which takes an *slog.Logger; logging.NewSlogLogger bridges it
to zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewTrendCacheGCService(store, 10*time.Minute, 0.5, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 30*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	errCh := tree.ServeBackground(ctx)

After shutdown, UnstoppedServiceReport lists services that missed the
shutdown timeout.
*/
package supervisor
