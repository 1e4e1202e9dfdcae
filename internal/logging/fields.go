package logging

// Structured log keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Pipeline.
	FieldPlatform  = "platform"
	FieldMod       = "mod"
	FieldModName   = "mod_name"
	FieldRemoved   = "removed"
	FieldDryRun    = "dry_run"
	FieldCommit    = "commit"
	FieldFiles     = "files"
	FieldChanged   = "changed"
	FieldWarnings  = "warnings"
	FieldPlugin    = "plugin"
	FieldPlatforms = "platforms"

	// Version.
	FieldVersion  = "version"
	FieldRevision = "revision"
	FieldBuilt    = "built"
)
