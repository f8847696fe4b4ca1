package diag

// Diagnostic code constants organized by phase.
// Graph construction: missing components, cycles, depth limits.
// Validation: version, compatibility, conflict and shape problems.
// Execution: producer outcomes.
const (
	// Graph construction
	CodeMissingComponent   = "MissingComponent"
	CodeCircularDependency = "CircularDependency"
	CodeMaxDepthExceeded   = "MaxDepthExceeded"

	// Validation
	CodeVersionIncompatible          = "VersionIncompatible"
	CodeFrameworkIncompatible        = "FrameworkIncompatible"
	CodePlatformIncompatible         = "PlatformIncompatible"
	CodeContextIncompatible          = "ContextIncompatible"
	CodeComponentConflict            = "ComponentConflict"
	CodeUnresolvedRequiredDependency = "UnresolvedRequiredDependency"
	CodeMalformedDescriptor          = "ValidationMalformedDescriptor"

	// Execution
	CodeProducerFailure = "ProducerFailure"
)
