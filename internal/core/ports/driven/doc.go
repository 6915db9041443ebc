// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DataSource: Loads a tabular dataset from one store kind
//   - DataSink: Persists a tabular dataset to one store kind
//   - StoreRegistry: Resolves store kinds to implementations
//   - Scorer: Computes sentiment for one or many texts
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TokenProvider: Supplies API tokens to stores that need one
//   - ConfigStore: File-backed defaults for the external layers
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or store package
package driven
