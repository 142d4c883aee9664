// Package migrations embeds the goose SQL migrations for the registry-side
// schema of the reconciliation engine.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
