// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldElapsed    = "elapsed"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldJobs       = "jobs"
	FieldOutDir     = "out_dir"
	FieldConfigFile = "config_file"
	FieldSource     = "source"

	// Directive fields.
	FieldDirective = "directive"
	FieldPosition  = "position"
	FieldReason    = "reason"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesRendered     = "files_rendered"
	FieldFilesErrored      = "files_errored"
	FieldFilesStale        = "files_stale"
	FieldCardsRewritten    = "cards_rewritten"
	FieldGridsRewritten    = "grids_rewritten"
	FieldDirectivesSkipped = "directives_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
