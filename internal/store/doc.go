// Package store defines the persistence contracts for the application.
// It declares the TaskStore interface, the sentinel errors implementations
// map database failures onto, and the transaction helper that gives the
// service layer its commit-or-rollback boundary.
package store
