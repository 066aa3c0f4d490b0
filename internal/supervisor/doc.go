// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

/*
Package supervisor runs Spark's long-lived services under a suture v4 tree.

	RootSupervisor ("spark")
	├── DataSupervisor ("data-layer")
	│   ├── badger-gc        (store.backend=badger)
	│   └── feed-cache       (cache sweeper)
	├── EventsSupervisor ("events-layer")
	│   └── event-recorder
	└── APISupervisor ("api-layer")
	    ├── session-janitor
	    └── http-server

Each layer restarts its children independently, so a recorder that keeps
failing on a broken NATS connection does not take the HTTP server down.
Supervisor events are logged through sutureslog on the slog bridge of the
zerolog logger.

Usage:

	tree, err := supervisor.NewTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	tree.AddDataService(feedCache)
	tree.AddEventsService(recorder)
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, timeout, logger))
	err = tree.Serve(ctx)
*/
package supervisor
