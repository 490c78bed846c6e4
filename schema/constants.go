package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of console output.
	OutputMode string

	// ChangeStatus represents the change type of a file within a commit.
	ChangeStatus string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// Change statuses as reported by git name-status output. Rename and copy
// statuses carry a similarity score suffix (e.g. R100) on the wire.
const (
	StatusAdded       ChangeStatus = "A"
	StatusModified    ChangeStatus = "M"
	StatusDeleted     ChangeStatus = "D"
	StatusRenamed     ChangeStatus = "R"
	StatusCopied      ChangeStatus = "C"
	StatusTypeChanged ChangeStatus = "T"
)

// All run tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid run tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
