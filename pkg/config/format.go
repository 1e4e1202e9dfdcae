package config

// OutputFormat specifies how apply results are printed.
type OutputFormat string

const (
	// FormatText prints a per-file summary.
	FormatText OutputFormat = "text"

	// FormatDiff prints unified diffs of every changed file.
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	return f == FormatText || f == FormatDiff
}

// CommitMode selects when staged native files are written.
type CommitMode string

const (
	// CommitPerFile writes each file once its mod chain finishes.
	CommitPerFile CommitMode = "file"

	// CommitPerPlatform writes every file of a platform after the last chain.
	CommitPerPlatform CommitMode = "platform"
)

// IsValid returns true if the commit mode is known.
func (m CommitMode) IsValid() bool {
	return m == CommitPerFile || m == CommitPerPlatform
}

// LiteralPolicy decides whether literal XML attribute values replace values
// already present on matched elements.
type LiteralPolicy string

const (
	LiteralOverwrite LiteralPolicy = "overwrite"
	LiteralIfAbsent  LiteralPolicy = "if_absent"
)

// IsValid returns true if the policy is known.
func (p LiteralPolicy) IsValid() bool {
	return p == LiteralOverwrite || p == LiteralIfAbsent
}
