package output

// VerbosityLevel controls output detail.
type VerbosityLevel int

const (
	// VerbosityDefault shows clean results only (no progress, no statistics).
	VerbosityDefault VerbosityLevel = iota
	// VerbosityVerbose adds statistics and summary info.
	VerbosityVerbose
	// VerbosityDebug adds timestamps and diagnostic messages.
	VerbosityDebug
)

// OutputFormat specifies the call graph encoding requested via --format.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatDOT  OutputFormat = "dot"
)

// OutputOptions configures how the CLI renders a built graph.
type OutputOptions struct {
	Verbosity VerbosityLevel
	Format    OutputFormat
}

// NewDefaultOptions returns options matching the CLI's documented defaults.
func NewDefaultOptions() *OutputOptions {
	return &OutputOptions{
		Verbosity: VerbosityDefault,
		Format:    FormatJSON,
	}
}

// ShouldShowStatistics returns true if statistics should be displayed.
func (o *OutputOptions) ShouldShowStatistics() bool {
	return o.Verbosity >= VerbosityVerbose
}

// ShouldShowDebug returns true if debug output should be displayed.
func (o *OutputOptions) ShouldShowDebug() bool {
	return o.Verbosity >= VerbosityDebug
}
