package schema

// Criterion identifies one of the five data-quality dimensions.
type Criterion string

// The fixed set of quality criteria. Every report carries exactly these five.
const (
	Completeness Criterion = "Completeness"
	Uniqueness   Criterion = "Uniqueness"
	Consistency  Criterion = "Consistency"
	Accuracy     Criterion = "Accuracy"
	Integrity    Criterion = "Integrity"
)

// AllCriteria lists the criteria in canonical report order.
var AllCriteria = []Criterion{Completeness, Uniqueness, Consistency, Accuracy, Integrity}

// IsValid reports whether c is one of the five known criteria.
func (c Criterion) IsValid() bool {
	switch c {
	case Completeness, Uniqueness, Consistency, Accuracy, Integrity:
		return true
	}
	return false
}

// ColumnType is the declared type of a dataset column.
type ColumnType string

// Column types produced by the loader. Boolean/binary source columns are
// normalized to NumericColumn with 0/1 values, matching how binary flags
// are checked downstream.
const (
	NumericColumn  ColumnType = "numeric"
	TextualColumn  ColumnType = "textual"
	TemporalColumn ColumnType = "temporal"
)

// OutputMode controls how results are rendered.
type OutputMode string

// Supported output modes.
const (
	TextOut OutputMode = "text"
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ParseOutputMode validates an output mode string from config or flags.
func ParseOutputMode(s string) (OutputMode, bool) {
	switch OutputMode(s) {
	case TextOut, CSVOut, JSONOut:
		return OutputMode(s), true
	}
	return "", false
}

// DatabaseBackend identifies the storage backend for run history.
type DatabaseBackend string

// Supported history backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ParseDatabaseBackend validates a backend string from config or flags.
func ParseDatabaseBackend(s string) (DatabaseBackend, bool) {
	switch DatabaseBackend(s) {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend:
		return DatabaseBackend(s), true
	}
	return "", false
}
