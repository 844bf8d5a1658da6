package config

const (
	// DefaultVersion is the server version the suites ran against
	DefaultVersion = "v5.0"
	// DefaultResultsDir is where the harness leaves its artifacts
	DefaultResultsDir = "./results-5.0"
	// DefaultCSVPath is the report destination
	DefaultCSVPath = "./results.csv"
	// DefaultConfigFile is read when present and no --config is given
	DefaultConfigFile = "mcra.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
	// DefaultSnapshotDir is where the last run is stored for the failures viewer
	DefaultSnapshotDir = "storage"
	// DefaultSnapshotFile is the snapshot file name
	DefaultSnapshotFile = "last-report.json"
	// DefaultMaxLineLength caps every stored log line, in characters
	DefaultMaxLineLength = 5000
	// DefaultMaxErrorCandidates caps the number of distinct error messages per test
	DefaultMaxErrorCandidates = 1000
	// DefaultLogLevel is the slog level name
	DefaultLogLevel = "info"
	// DefaultLogFormat is text or json
	DefaultLogFormat = "text"
	// DefaultMySQLTable receives rows when the MySQL sink is enabled
	DefaultMySQLTable = "correctness_results"
)

// DefaultSuites are the suites run by the harness container
var DefaultSuites = []string{
	"aggregation",
	"change_streams",
	"core",
	"decimal",
	"core_txns",
	"json_schema",
}
