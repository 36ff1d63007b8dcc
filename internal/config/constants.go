package config

const SourceFileExt = ".galaxy"

// SourceFileExtensions are all recognized program file extensions
var SourceFileExtensions = []string{".galaxy", ".txt"}

// ConfigFileNames are searched for, in order, by FindConfig.
var ConfigFileNames = []string{"galaxy.yaml", "galaxy.yml"}

// HistoryFileName is the REPL history file kept in the user's home directory.
const HistoryFileName = ".galaxy_history"

// Evaluation limits
const (
	// DefaultMaxIterations caps the reduction steps of a single weak-head
	// resolution before it is reported as divergent.
	DefaultMaxIterations = 10000
	// DefaultMaxDepth caps nested resolutions (forcing inside forcing).
	DefaultMaxDepth = 20000
	// DefaultMaxNodes caps the list cells forced by one evaluation.
	DefaultMaxNodes = 1 << 20
)

// Version is reported by `galaxy -version`.
const Version = "0.3.0"
