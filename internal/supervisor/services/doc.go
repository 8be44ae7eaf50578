// Moodboard - Aesthetic Profile Shopping Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodboard

/*
Package services provides suture.Service wrappers for Moodboard components.

Each wrapper implements Serve(ctx context.Context) error and fmt.Stringer:

  - HTTPServerService: runs *http.Server, graceful Shutdown on cancel
  - TrendCacheGCService: ticker loop calling the trend disk cache value-log GC

Wrappers depend on small interfaces (HTTPServer, ValueLogCollector) so
they can be tested with stubs and do not import the packages they run.
*/
package services
