// Package cli wires the cobra command tree: sync, diff, status, init,
// history, systems, mcp, index, config, and version. Commands construct an
// engine over the project's state store and the builtin adapter registry,
// and close the store when done.
package cli
