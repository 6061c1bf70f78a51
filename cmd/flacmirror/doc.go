// Package main hosts the flacmirror CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into a single
// sync run plus configuration scaffolding. It centralizes configuration
// resolution, flag overlays, destination locking, and structured logging
// setup so the conversion pipeline can focus on encoding instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through flags or subcommands here.
package main
