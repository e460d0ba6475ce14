// Package migrations embeds the schema migration files into the binary so
// deployments never depend on a migrations directory being shipped alongside.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
