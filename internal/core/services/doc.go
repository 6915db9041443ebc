// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The pipeline service owns the run lifecycle; the score service
// answers ad-hoc scoring; the store registry resolves store kinds.
package services
