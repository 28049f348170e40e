package storage

import "strings"

// IsPostgres reports whether a store location is a PostgreSQL connection
// string, either a URL or a key=value DSN
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") ||
		strings.HasPrefix(location, "postgresql://") ||
		strings.Contains(location, "host=")
}

// IsJSON reports whether a store location names a JSON document store
func IsJSON(location string) bool {
	return strings.HasSuffix(strings.ToLower(location), ".json")
}
