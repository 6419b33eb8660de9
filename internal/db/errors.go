package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrUnsupportedDatabase = errors.New("unsupported database URL")
)
