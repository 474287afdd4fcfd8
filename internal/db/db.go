package db

import "database/sql"

// DB wraps the raw connection pool so callers depend on this package,
// not on database/sql directly.
type DB struct {
	*sql.DB
}
