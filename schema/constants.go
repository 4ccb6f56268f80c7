package schema

// Custom string types for type safety.
type (
	// PriorityTier represents the bucketed priority of an issue.
	PriorityTier string

	// ComplexityLevel represents the estimated implementation complexity.
	ComplexityLevel string

	// RecommendSignal represents keys used in recommendation weighting.
	RecommendSignal string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All priority tiers supported.
const (
	HighTier   PriorityTier = "high"
	MediumTier PriorityTier = "medium"
	LowTier    PriorityTier = "low" // default bucket
)

// All complexity levels supported.
const (
	HighComplexity   ComplexityLevel = "high"
	MediumComplexity ComplexityLevel = "medium"
	LowComplexity    ComplexityLevel = "low"
)

// Recommendation signals used in match scoring.
const (
	SignalKeywords RecommendSignal = "keywords" // expertise keyword overlap
	SignalPaths    RecommendSignal = "paths"    // referenced-file category overlap
	SignalLabels   RecommendSignal = "labels"   // preferred label overlap
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All persistence backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultRecommendWeights returns the default weight map for match scoring.
// Signals contribute equally unless configured otherwise.
func GetDefaultRecommendWeights() map[RecommendSignal]float64 {
	return map[RecommendSignal]float64{
		SignalKeywords: 1.0,
		SignalPaths:    1.0,
		SignalLabels:   1.0,
	}
}

// GetDefaultLabelWeights returns the default per-bucket label weights.
func GetDefaultLabelWeights() map[PriorityTier]int {
	return map[PriorityTier]int{
		HighTier:   10,
		MediumTier: 5,
		LowTier:    2,
	}
}
