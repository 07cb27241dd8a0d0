package sqlformat

import (
	"regexp"
	"strings"
	"time"

	srvErrors "github.com/kubev2v/odata-sql/pkg/errors"
)

const defaultSchema = "dbo"

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,127}$`)

// IsValidIdentifier reports whether name can be used as a table, schema or
// column name.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// FormatMember quotes a column name.
func FormatMember(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", srvErrors.NewInvalidIdentifierError(name)
	}
	return "[" + name + "]", nil
}

// FormatTableName quotes a table name, qualified by schema for mssql.
func FormatTableName(flavor Flavor, schema, table string) (string, error) {
	name, err := FormatMember(table)
	if err != nil {
		return "", err
	}

	if flavor == SQLite {
		return name, nil
	}

	schemaName, err := FormatMember(NormalizeSchema(schema))
	if err != nil {
		return "", err
	}

	return schemaName + "." + name, nil
}

// NormalizeSchema defaults an empty schema to dbo and replaces dashes, which
// are common in application names but invalid in identifiers.
func NormalizeSchema(schema string) string {
	if schema == "" {
		return defaultSchema
	}
	return strings.ReplaceAll(schema, "-", "_")
}

// GetSQLType returns the column type matching a Go value in the flavor. It
// returns the empty string for unsupported values.
func GetSQLType(flavor Flavor, value any) string {
	sqlite := flavor == SQLite

	pick := func(mssql, lite string) string {
		if sqlite {
			return lite
		}
		return mssql
	}

	switch value.(type) {
	case string:
		return pick("NVARCHAR(MAX)", "TEXT")
	case bool:
		return pick("BIT", "INTEGER")
	case int, int32, int64:
		return pick("BIGINT", "INTEGER")
	case float32, float64:
		return pick("FLOAT(53)", "REAL")
	case time.Time:
		return pick("DATETIMEOFFSET(3)", "TEXT")
	case []byte:
		return pick("VARBINARY(MAX)", "BLOB")
	default:
		return ""
	}
}
