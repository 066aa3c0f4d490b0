// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

/*
Package events publishes behavior changes on a Watermill message bus.

Every accepted behavior mutation becomes a BehaviorEvent on the Topic topic.
By default the bus is an in-process Watermill GoChannel; with NATS enabled
the same topic is carried over JetStream so other processes can consume it.

Publishing never fails a request: Bus.Observer logs and counts publish
errors and returns.

The Recorder consumes the topic and maintains per-kind counters, exported
as Prometheus metrics. It implements the supervisor service contract
(Serve(ctx) error).
*/
package events
