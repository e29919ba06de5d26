// Package history keeps a SQLite ledger of processed audio files so operators
// can see which notes were produced, when, and with which model.
//
// The schema is embedded and versioned; a database written by an incompatible
// version is rejected with ErrSchemaMismatch rather than migrated.
package history
