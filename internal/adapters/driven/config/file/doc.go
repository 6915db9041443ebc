// Package file provides file-based implementations of driven port
// interfaces. These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based default configuration for the CLI
package file
