// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

/*
Package services provides suture.Service implementations for the server.

HTTPServerService turns http.Server's ListenAndServe into a context-aware
Serve with graceful Shutdown.

BundleWatcher follows the artifact directory and publishes new bundles to
the serving pipeline. It reacts to fsnotify events on bundle files, with a
short debounce, and rescans on a ticker in case events are lost or the
platform has no notification support. Every attempt is counted in
rallypoint_bundle_reloads_total by result (success, failed, unchanged). A bundle that
fails to load or validate is skipped and the previous snapshot stays live.
*/
package services
