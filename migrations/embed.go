package migrations

import "embed"

// FS holds the goose migrations applied by the migrate command and the e2e setup.
//
//go:embed *.sql
var FS embed.FS
