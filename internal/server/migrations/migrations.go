// Package migrations embeds the goose SQL migrations applied on startup by
// the PostgreSQL repository manager.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
