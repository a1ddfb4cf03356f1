// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Fix application fields.
	FieldFixes    = "fixes"
	FieldApplied  = "applied"
	FieldRejected = "rejected"
	FieldCode     = "code"
	FieldLanguage = "language"
	FieldInPlace  = "in_place"
	FieldDryRun   = "dry_run"
	FieldBackup   = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
