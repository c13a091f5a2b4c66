package store

import (
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver, registered as "pgx"
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
	"github.com/pressly/goose/v3"
)

// dialect holds what differs between the supported databases.
type dialect struct {
	name       string // directory under migrations/
	driverName string // database/sql driver
	goose      goose.Dialect
	// dollarParams means placeholders are $1, $2, ... instead of ?.
	dollarParams bool
	// returningID means inserts report the new id via RETURNING instead of LastInsertId.
	returningID bool
}

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return dialect{name: "sqlite3", driverName: "sqlite3", goose: goose.DialectSQLite3}, nil
	case "postgres", "postgresql", "pgx":
		return dialect{
			name:         "postgres",
			driverName:   "pgx",
			goose:        goose.DialectPostgres,
			dollarParams: true,
			returningID:  true,
		}, nil
	case "mysql":
		return dialect{name: "mysql", driverName: "mysql", goose: goose.DialectMySQL}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// rebind rewrites ? placeholders for dialects that number their parameters.
func (d dialect) rebind(query string) string {
	if !d.dollarParams {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqliteDSN appends the foreign key pragma understood by go-sqlite3.
func sqliteDSN(dsn string, enforceForeignKeys bool) string {
	fk := "0"
	if enforceForeignKeys {
		fk = "1"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=" + fk
}
