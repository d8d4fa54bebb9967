package database

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

type Dialect string

const (
	DialectSQLite     Dialect = "sqlite"
	DialectMySQL      Dialect = "mysql"
	DialectPostgreSQL Dialect = "postgresql"
)

// Placeholder returns the bind parameter for the n-th argument (1 based)
func (d Dialect) Placeholder(n int) string {
	if d == DialectPostgreSQL {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Quote quotes an identifier
func (d Dialect) Quote(identifier string) string {
	switch d {
	case DialectPostgreSQL:
		return pq.QuoteIdentifier(identifier)
	case DialectMySQL:
		return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
	}
}
