// Package cli implements the interactive Microstory command line client: a
// small REPL that registers, logs in, publishes stories and browses the feed
// through the HTTP API.
package cli
