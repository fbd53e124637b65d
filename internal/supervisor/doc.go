// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

/*
Package supervisor runs the server's long-lived services under suture v4.

	RootSupervisor ("rallypoint")
	├── ArtifactsSupervisor ("artifacts-layer")
	│   └── BundleWatcher (if artifacts.watch)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with backoff. A failing watcher never takes the
HTTP server down with it; requests keep hitting the last published snapshot.

Supervisor events go to zerolog through sutureslog and the slog adapter in
the logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddArtifactService(services.NewBundleWatcher(store, pipeline, roster, watchCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

On shutdown each service gets ShutdownTimeout to return; stragglers are
listed by UnstoppedServiceReport.
*/
package supervisor
