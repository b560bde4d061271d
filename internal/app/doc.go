// Package app contains the core application logic. It wires configuration,
// logging, metrics, persistence and the query engine into one App and
// exposes the operations the command line drives, decoupled from any
// specific entrypoint.
package app
