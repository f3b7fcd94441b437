// Package memory provides in-memory implementations of the driven storage
// ports. They back the unit tests and the
// ephemeral sessions of the MCP server.
package memory
