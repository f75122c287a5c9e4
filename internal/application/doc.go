// Package application wires settings, logging and the configuration and
// keypair loaders into the entry points used by the CLI. Every entry point
// turns a missing or unusable CLI config into a logged warning plus a default
// value, so callers always receive something usable.
package application
